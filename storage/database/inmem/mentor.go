package inmemdb

import (
	"context"
	"sort"

	"github.com/campusconnect/backend/core/mentor"
)

type mentorRepository struct {
	db *mentorTable
}

var _ mentor.Repository = (*mentorRepository)(nil) // interface compliance check

func NewMentorRepository(db *DB) mentor.Repository {
	return &mentorRepository{db: db.mentor}
}

// SeedMentors loads fixture mentors, assigning IDs. Test helper.
func SeedMentors(db *DB, mentors ...mentor.Mentor) []mentor.Mentor {
	db.mentor.mutex.Lock()
	defer db.mentor.mutex.Unlock()

	seeded := make([]mentor.Mentor, 0, len(mentors))
	for _, m := range mentors {
		m := m
		db.mentor.pkCount++
		m.ID = db.mentor.pkCount
		db.mentor.table[m.ID] = &m
		seeded = append(seeded, m)
	}
	return seeded
}

func (repo *mentorRepository) QueryAllMentors(_ context.Context) ([]mentor.Mentor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	mentors := make([]mentor.Mentor, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		mentors = append(mentors, *m)
	}
	sort.Slice(mentors, func(i, j int) bool {
		if mentors[i].Rating != mentors[j].Rating {
			return mentors[i].Rating > mentors[j].Rating
		}
		return mentors[i].Name < mentors[j].Name
	})
	return mentors, nil
}

func (repo *mentorRepository) GetMentorByID(_ context.Context, id int) (mentor.Mentor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return mentor.Mentor{}, mentor.ErrNotFound
}

func (repo *mentorRepository) CreateSession(_ context.Context, sess mentor.Session) (mentor.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.sessionCount++
	sess.ID = repo.db.sessionCount
	if m, ok := repo.db.table[sess.MentorID]; ok {
		sess.Mentor = *m
	}
	repo.db.sessions[sess.ID] = &sess
	return sess, nil
}

func (repo *mentorRepository) GetSessionByID(_ context.Context, id int) (mentor.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sess, ok := repo.db.sessions[id]; ok {
		return *sess, nil
	}
	return mentor.Session{}, mentor.ErrSessionNotFound
}

func (repo *mentorRepository) QueryUserSessions(_ context.Context, userID string) ([]mentor.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var sessions []mentor.Session
	for _, sess := range repo.db.sessions {
		if sess.UserID == userID {
			sessions = append(sessions, *sess)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].ScheduledDate.Equal(sessions[j].ScheduledDate) {
			return sessions[i].ScheduledDate.Before(sessions[j].ScheduledDate)
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions, nil
}

func (repo *mentorRepository) UpdateSessionStatus(_ context.Context, id int, status string) (mentor.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sess, ok := repo.db.sessions[id]
	if !ok {
		return mentor.Session{}, mentor.ErrSessionNotFound
	}
	sess.Status = status
	return *sess, nil
}
