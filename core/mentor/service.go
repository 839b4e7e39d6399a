package mentor

import (
	"context"
	"errors"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/campusconnect/backend/core"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/user"
)

var (
	ErrNotFound        = errors.New("mentor not found")
	ErrSessionNotFound = errors.New("session not found")
)

type (
	Repository interface {
		QueryAllMentors(ctx context.Context) ([]Mentor, error)
		GetMentorByID(ctx context.Context, id int) (Mentor, error)
		CreateSession(ctx context.Context, sess Session) (Session, error)
		GetSessionByID(ctx context.Context, id int) (Session, error)
		// QueryUserSessions returns sessions ordered by scheduled date ascending.
		QueryUserSessions(ctx context.Context, userID string) ([]Session, error)
		UpdateSessionStatus(ctx context.Context, id int, status string) (Session, error)
	}

	Service struct {
		repo    Repository
		engine  *progress.Engine
		mailSvc core.EmailService
	}

	// BookResult couples the created session with the XP award outcome.
	BookResult struct {
		Session  Session         `json:"session"`
		Progress progress.Result `json:"progress"`
	}
)

func NewService(repo Repository, engine *progress.Engine, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, engine: engine, mailSvc: mailSvc}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Mentor, error) {
	return svc.repo.QueryAllMentors(ctx)
}

// Book creates a confirmed session, grants the flat booking XP and sends
// a confirmation email.
func (svc *Service) Book(ctx context.Context, usr user.User, ns NewSession) (BookResult, error) {
	mtr, err := svc.repo.GetMentorByID(ctx, ns.MentorID)
	if err != nil {
		if err == ErrNotFound {
			return BookResult{}, err
		}
		return BookResult{}, pkgerrors.Wrap(err, "getting mentor")
	}

	sess, err := svc.repo.CreateSession(ctx, Session{
		UserID:        usr.ID,
		MentorID:      mtr.ID,
		ScheduledDate: ns.ScheduledDate,
		Status:        SessionConfirmed,
		CreatedAt:     time.Now().UTC(),
		Mentor:        mtr,
	})
	if err != nil {
		return BookResult{}, pkgerrors.Wrap(err, "creating session")
	}

	res, err := svc.engine.AwardSessionBooked(ctx, usr.ID)
	if err != nil {
		return BookResult{}, pkgerrors.Wrap(err, "awarding booking xp")
	}

	if usr.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      "Mentor Session Confirmed",
			TemplateName: "session-booked",
			TemplateData: struct {
				Name          string
				MentorName    string
				MentorCollege string
				ScheduledDate string
				XPAwarded     int
			}{
				Name:          usr.Name,
				MentorName:    mtr.Name,
				MentorCollege: mtr.College,
				ScheduledDate: sess.ScheduledDate.Format(time.RFC1123),
				XPAwarded:     progress.XPSessionBooked,
			},
		})
	}
	return BookResult{Session: sess, Progress: res}, nil
}

// Cancel marks the session cancelled. The XP granted at booking time is
// kept; cancellation carries no penalty.
func (svc *Service) Cancel(ctx context.Context, sessionID int, userID string) (Session, error) {
	sess, err := svc.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if err == ErrSessionNotFound {
			return Session{}, err
		}
		return Session{}, pkgerrors.Wrap(err, "getting session")
	}
	if sess.UserID != userID {
		return Session{}, ErrSessionNotFound
	}

	sess, err = svc.repo.UpdateSessionStatus(ctx, sess.ID, SessionCancelled)
	return sess, pkgerrors.Wrap(err, "cancelling session")
}

func (svc *Service) UserSessions(ctx context.Context, userID string) ([]Session, error) {
	return svc.repo.QueryUserSessions(ctx, userID)
}
