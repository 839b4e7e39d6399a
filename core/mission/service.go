package mission

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campusconnect/backend/core/progress"
)

var (
	// ErrNotFound is returned when a mission does not exist or is not
	// owned by the requesting user.
	ErrNotFound = errors.New("mission not found")
)

type (
	Repository interface {
		GetMission(ctx context.Context, id int) (Mission, error)
		QueryUserMissions(ctx context.Context, userID string) ([]Mission, error)
		CreateMissions(ctx context.Context, missions ...Mission) ([]Mission, error)
		UpdateMissionStatus(ctx context.Context, id int, status string, completedOn null.Time) (Mission, error)
	}

	Service struct {
		repo   Repository
		engine *progress.Engine
	}

	// ToggleResult reports the mission's new state alongside the XP
	// engine's outcome for the linked delta.
	ToggleResult struct {
		Mission  Mission         `json:"mission"`
		XPChange int             `json:"xp_change"`
		Progress progress.Result `json:"progress"`
	}
)

func NewService(repo Repository, engine *progress.Engine) *Service {
	return &Service{repo: repo, engine: engine}
}

// QueryForUser returns the user's missions, seeding the default template
// set the first time the user is observed to have none.
func (svc *Service) QueryForUser(ctx context.Context, userID string) ([]Mission, error) {
	missions, err := svc.repo.QueryUserMissions(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "querying user missions")
	}
	if len(missions) > 0 {
		return missions, nil
	}

	now := time.Now().UTC()
	seed := make([]Mission, 0, len(DefaultMissions))
	for _, tmpl := range DefaultMissions {
		seed = append(seed, Mission{
			UserID:    userID,
			Text:      tmpl.Text,
			Type:      tmpl.Type,
			XPReward:  tmpl.XPReward,
			Status:    StatusPending,
			CreatedAt: now,
		})
	}
	missions, err = svc.repo.CreateMissions(ctx, seed...)
	return missions, pkgerrors.Wrap(err, "seeding default missions")
}

// Toggle moves a mission to the desired completion state and applies the
// linked XP delta: +XPReward when marking complete, -XPReward when marking
// incomplete. The delta always uses the fixed reward rather than the
// mission's current status, so a complete/uncomplete pair restores XP
// exactly. Toggling to the state the mission is already in re-issues the
// delta; the caller (the UI disables the control) is expected to send
// intentional transitions only.
func (svc *Service) Toggle(ctx context.Context, missionID int, userID string, completed bool) (ToggleResult, error) {
	m, err := svc.repo.GetMission(ctx, missionID)
	if err != nil {
		if err == ErrNotFound {
			return ToggleResult{}, err
		}
		return ToggleResult{}, pkgerrors.Wrap(err, "getting mission")
	}
	if m.UserID != userID {
		return ToggleResult{}, ErrNotFound
	}

	xpChange := m.XPReward
	status := StatusCompleted
	completedOn := null.TimeFrom(time.Now().UTC())
	if !completed {
		xpChange = -m.XPReward
		status = StatusPending
		completedOn = null.Time{}
	}
	prevStatus, prevCompletedOn := m.Status, m.CompletedOn

	m, err = svc.repo.UpdateMissionStatus(ctx, m.ID, status, completedOn)
	if err != nil {
		return ToggleResult{}, pkgerrors.Wrap(err, "updating mission status")
	}

	var reason = progress.ReasonMissionCompleted
	if !completed {
		reason = progress.ReasonMissionUncompleted
	}
	res, err := svc.engine.ApplyDelta(ctx, userID, xpChange, reason)
	if err != nil {
		// the status flip and the XP delta commit together or not at all:
		// restore the mission before surfacing the failed apply
		if _, rbErr := svc.repo.UpdateMissionStatus(ctx, m.ID, prevStatus, prevCompletedOn); rbErr != nil {
			return ToggleResult{}, pkgerrors.Wrap(rbErr, "restoring mission status after failed xp apply")
		}
		return ToggleResult{}, pkgerrors.Wrap(err, "applying mission xp delta")
	}

	return ToggleResult{Mission: m, XPChange: xpChange, Progress: res}, nil
}
