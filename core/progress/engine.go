package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/campusconnect/backend/core"
)

var (
	// ErrNotFound is returned when no progress record exists for a user.
	ErrNotFound = errors.New("user progress not found")
)

type (
	Repository interface {
		GetProgress(ctx context.Context, userID string) (Progress, error)
		// UpdateProgress persists xp and level in a single write;
		// the two columns never land separately.
		UpdateProgress(ctx context.Context, userID string, xp, level int) error
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		QueryEvents(ctx context.Context, userID string) ([]Event, error)
	}

	// Engine is the single authority for mutating a user's xp/level pair.
	// All deltas for a given user are serialized through a per-user lock so
	// concurrent actions (two mission toggles, a college view racing a
	// booking) compose instead of losing updates.
	Engine struct {
		repo   Repository
		logger core.Logger

		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}
)

func NewEngine(repo Repository, logger core.Logger) *Engine {
	return &Engine{
		repo:   repo,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (e *Engine) lockFor(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[userID]
	if !ok {
		lock = new(sync.Mutex)
		e.locks[userID] = lock
	}
	return lock
}

// ApplyDelta reads the user's current (xp, level), applies the signed delta
// with a floor at 0, re-derives the level and persists both fields.
// LeveledUp is reported only for a strict level increase; a level decrease
// from a revocation still updates the stored level but is not flagged.
func (e *Engine) ApplyDelta(ctx context.Context, userID string, delta int, reason Reason) (Result, error) {
	lock := e.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.repo.GetProgress(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return Result{}, err
		}
		return Result{}, core.NewPersistenceError("reading progress", err)
	}

	newXP := p.XP + delta
	if newXP < 0 {
		newXP = 0 // XP never goes negative; a deliberate floor, not an error
	}
	newLevel := LevelForXP(newXP)

	if err := e.repo.UpdateProgress(ctx, userID, newXP, newLevel); err != nil {
		if err == ErrNotFound {
			return Result{}, err
		}
		return Result{}, core.NewPersistenceError("writing progress", err)
	}

	// audit trail; failure to record never rolls back an applied delta
	evt := Event{
		UserID:    userID,
		Delta:     delta,
		Applied:   newXP - p.XP,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := e.repo.CreateEvent(ctx, evt); err != nil {
		e.logger.Warn("recording xp event", err, map[string]interface{}{"userID": userID, "reason": reason})
	}

	return Result{
		XP:        newXP,
		Level:     newLevel,
		LeveledUp: newLevel > p.Level,
	}, nil
}

// AwardCollegeViewed grants the flat reward for viewing a college.
func (e *Engine) AwardCollegeViewed(ctx context.Context, userID string) (Result, error) {
	return e.ApplyDelta(ctx, userID, XPCollegeViewed, ReasonCollegeViewed)
}

// AwardSessionBooked grants the flat reward for booking a mentor session.
// There is no matching revocation: cancelling a session keeps the XP.
func (e *Engine) AwardSessionBooked(ctx context.Context, userID string) (Result, error) {
	return e.ApplyDelta(ctx, userID, XPSessionBooked, ReasonSessionBooked)
}

// Get returns the user's current progress.
func (e *Engine) Get(ctx context.Context, userID string) (Progress, error) {
	p, err := e.repo.GetProgress(ctx, userID)
	if err != nil && err != ErrNotFound {
		return Progress{}, core.NewPersistenceError("reading progress", err)
	}
	return p, err
}

// History returns the user's XP events, most recent first.
func (e *Engine) History(ctx context.Context, userID string) ([]Event, error) {
	evts, err := e.repo.QueryEvents(ctx, userID)
	if err != nil {
		return nil, core.NewPersistenceError("reading xp events", err)
	}
	return evts, nil
}
