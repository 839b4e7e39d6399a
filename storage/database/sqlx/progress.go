package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/progress"
)

// progressRepository reads and writes the xp/level pair on the user row
// and appends to the xp_event audit table.
type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetProgress(ctx context.Context, userID string) (progress.Progress, error) {
	var p progress.Progress
	query := `SELECT id, xp, level FROM "user" WHERE id = $1`
	err := repo.db.QueryRowxContext(ctx, query, userID).Scan(&p.UserID, &p.XP, &p.Level)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.Progress{}, progress.ErrNotFound
		}
		return progress.Progress{}, errors.Wrap(err, "getting progress")
	}
	return p, nil
}

func (repo *progressRepository) UpdateProgress(ctx context.Context, userID string, xp, level int) error {
	query := `UPDATE "user" SET xp = $2, level = $3, updated_at = now() WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, userID, xp, level)
	if err != nil {
		return errors.Wrap(err, "updating progress")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return progress.ErrNotFound
	}
	return nil
}

func (repo *progressRepository) CreateEvent(ctx context.Context, evt progress.Event) (progress.Event, error) {
	query := `
INSERT INTO xp_event (user_id, delta, applied, reason, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, delta, applied, reason, created_at`
	err := repo.db.QueryRowxContext(ctx, query, evt.UserID, evt.Delta, evt.Applied, evt.Reason, evt.CreatedAt).
		Scan(&evt.ID, &evt.UserID, &evt.Delta, &evt.Applied, &evt.Reason, &evt.CreatedAt)
	if err != nil {
		return progress.Event{}, errors.Wrap(err, "creating xp event")
	}
	return evt, nil
}

func (repo *progressRepository) QueryEvents(ctx context.Context, userID string) ([]progress.Event, error) {
	query := `
SELECT id, user_id, delta, applied, reason, created_at
FROM xp_event WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying xp events")
	}
	defer func() { _ = rows.Close() }()

	var events []progress.Event
	for rows.Next() {
		var evt progress.Event
		if err = rows.Scan(&evt.ID, &evt.UserID, &evt.Delta, &evt.Applied, &evt.Reason, &evt.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning xp event")
		}
		events = append(events, evt)
	}
	return events, errors.Wrap(rows.Err(), "reading xp events")
}
