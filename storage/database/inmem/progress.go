package inmemdb

import (
	"context"
	"sort"

	"github.com/campusconnect/backend/core/progress"
)

// progressRepository shares the user table: xp/level live on the user
// record, mirroring the relational schema.
type progressRepository struct {
	users  *userTable
	events *xpEventTable
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{users: db.user, events: db.xpEvent}
}

func (repo *progressRepository) GetProgress(_ context.Context, userID string) (progress.Progress, error) {
	repo.users.mutex.RLock()
	defer repo.users.mutex.RUnlock()

	usr, ok := repo.users.table[userID]
	if !ok {
		return progress.Progress{}, progress.ErrNotFound
	}
	return progress.Progress{UserID: usr.ID, XP: usr.XP, Level: usr.Level}, nil
}

func (repo *progressRepository) UpdateProgress(_ context.Context, userID string, xp, level int) error {
	repo.users.mutex.Lock()
	defer repo.users.mutex.Unlock()

	usr, ok := repo.users.table[userID]
	if !ok {
		return progress.ErrNotFound
	}
	usr.XP = xp
	usr.Level = level
	return nil
}

func (repo *progressRepository) CreateEvent(_ context.Context, evt progress.Event) (progress.Event, error) {
	repo.events.mutex.Lock()
	defer repo.events.mutex.Unlock()

	repo.events.pkCount++
	evt.ID = repo.events.pkCount
	repo.events.table[evt.ID] = &evt
	return evt, nil
}

func (repo *progressRepository) QueryEvents(_ context.Context, userID string) ([]progress.Event, error) {
	repo.events.mutex.RLock()
	defer repo.events.mutex.RUnlock()

	var events []progress.Event
	for _, evt := range repo.events.table {
		if evt.UserID == userID {
			events = append(events, *evt)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID > events[j].ID })
	return events, nil
}
