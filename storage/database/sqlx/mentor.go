package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/mentor"
)

const mentorColumns = `id, name, college, specialization, bio, profile_image, rating, sessions_completed`

type mentorRepository struct {
	db *sqlx.DB
}

var _ mentor.Repository = (*mentorRepository)(nil) // interface compliance check

func NewMentorRepository(db *sqlx.DB) mentor.Repository {
	return &mentorRepository{db: db}
}

func scanMentor(row sqlx.ColScanner) (mentor.Mentor, error) {
	var m mentor.Mentor
	err := row.Scan(&m.ID, &m.Name, &m.College, &m.Specialization, &m.Bio,
		&m.ProfileImage, &m.Rating, &m.SessionsCompleted)
	return m, err
}

func (repo *mentorRepository) QueryAllMentors(ctx context.Context) ([]mentor.Mentor, error) {
	rows, err := repo.db.QueryxContext(ctx, `SELECT `+mentorColumns+` FROM mentor ORDER BY rating DESC, name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying mentors")
	}
	defer func() { _ = rows.Close() }()

	var mentors []mentor.Mentor
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning mentor")
		}
		mentors = append(mentors, m)
	}
	return mentors, errors.Wrap(rows.Err(), "reading mentors")
}

func (repo *mentorRepository) GetMentorByID(ctx context.Context, id int) (mentor.Mentor, error) {
	m, err := scanMentor(repo.db.QueryRowxContext(ctx, `SELECT `+mentorColumns+` FROM mentor WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return mentor.Mentor{}, mentor.ErrNotFound
		}
		return mentor.Mentor{}, errors.Wrap(err, "getting mentor")
	}
	return m, nil
}

func scanSession(row sqlx.ColScanner) (mentor.Session, error) {
	var s mentor.Session
	err := row.Scan(&s.ID, &s.UserID, &s.MentorID, &s.ScheduledDate, &s.Status, &s.CreatedAt,
		&s.Mentor.ID, &s.Mentor.Name, &s.Mentor.College, &s.Mentor.Specialization, &s.Mentor.Bio,
		&s.Mentor.ProfileImage, &s.Mentor.Rating, &s.Mentor.SessionsCompleted)
	return s, err
}

const sessionQuery = `
SELECT s.id, s.user_id, s.mentor_id, s.scheduled_date, s.status, s.created_at,
       m.id, m.name, m.college, m.specialization, m.bio, m.profile_image, m.rating, m.sessions_completed
FROM session s
         JOIN mentor m ON m.id = s.mentor_id`

func (repo *mentorRepository) CreateSession(ctx context.Context, sess mentor.Session) (mentor.Session, error) {
	query := `
INSERT INTO session (user_id, mentor_id, scheduled_date, status, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowxContext(ctx, query,
		sess.UserID, sess.MentorID, sess.ScheduledDate, sess.Status, sess.CreatedAt).Scan(&sess.ID)
	if err != nil {
		return mentor.Session{}, errors.Wrap(err, "creating session")
	}
	return repo.GetSessionByID(ctx, sess.ID)
}

func (repo *mentorRepository) GetSessionByID(ctx context.Context, id int) (mentor.Session, error) {
	s, err := scanSession(repo.db.QueryRowxContext(ctx, sessionQuery+` WHERE s.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return mentor.Session{}, mentor.ErrSessionNotFound
		}
		return mentor.Session{}, errors.Wrap(err, "getting session")
	}
	return s, nil
}

func (repo *mentorRepository) QueryUserSessions(ctx context.Context, userID string) ([]mentor.Session, error) {
	query := sessionQuery + ` WHERE s.user_id = $1 ORDER BY s.scheduled_date, s.id`
	rows, err := repo.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	defer func() { _ = rows.Close() }()

	var sessions []mentor.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning session")
		}
		sessions = append(sessions, s)
	}
	return sessions, errors.Wrap(rows.Err(), "reading sessions")
}

func (repo *mentorRepository) UpdateSessionStatus(ctx context.Context, id int, status string) (mentor.Session, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE session SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return mentor.Session{}, errors.Wrap(err, "updating session status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mentor.Session{}, mentor.ErrSessionNotFound
	}
	return repo.GetSessionByID(ctx, id)
}
