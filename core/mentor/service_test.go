package mentor_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/campusconnect/backend/core/mentor"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/user"
	"github.com/campusconnect/backend/services/email"
	"github.com/campusconnect/backend/services/logger"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func setup(t *testing.T) (*mentor.Service, *progress.Engine, *inmemdb.DB, user.Repository) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	engine := progress.NewEngine(
		inmemdb.NewProgressRepository(db),
		logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
	)
	svc := mentor.NewService(inmemdb.NewMentorRepository(db), engine, emailsvc.NewConsoleServiceMock())
	return svc, engine, db, inmemdb.NewUserRepository(db)
}

func Test_Service_Book(t *testing.T) {
	svc, engine, db, usrRepo := setup(t)
	ctx := context.Background()

	mentors := inmemdb.SeedMentors(db,
		mentor.Mentor{Name: "Priya Sharma", College: "IIT Delhi", Specialization: "Computer Science", Rating: 4.9},
	)
	usr := testutil.CreateUser(t, usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)
	date := time.Now().AddDate(0, 0, 7).UTC().Truncate(time.Second)

	res, err := svc.Book(ctx, usr, mentor.NewSession{MentorID: mentors[0].ID, ScheduledDate: date})
	if err != nil {
		t.Fatalf("Book() failed: %v", err)
	}
	if res.Session.Status != mentor.SessionConfirmed {
		t.Errorf("Status = %v, want %v", res.Session.Status, mentor.SessionConfirmed)
	}
	if !res.Session.ScheduledDate.Equal(date) {
		t.Errorf("ScheduledDate = %v, want %v", res.Session.ScheduledDate, date)
	}
	if res.Session.Mentor.Name != mentors[0].Name {
		t.Errorf("Mentor = %v, want %v", res.Session.Mentor.Name, mentors[0].Name)
	}
	if res.Progress.XP != progress.XPSessionBooked {
		t.Errorf("XP = %d, want %d", res.Progress.XP, progress.XPSessionBooked)
	}

	sessions, err := svc.UserSessions(ctx, usr.ID)
	if err != nil {
		t.Fatalf("UserSessions() failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != res.Session.ID {
		t.Errorf("UserSessions() = %+v, want the booked session", sessions)
	}

	if _, err = svc.Book(ctx, usr, mentor.NewSession{MentorID: 404, ScheduledDate: date}); err != mentor.ErrNotFound {
		t.Errorf("Book() error = %v, want %v", err, mentor.ErrNotFound)
	}

	// booking XP survives cancellation
	sess, err := svc.Cancel(ctx, res.Session.ID, usr.ID)
	if err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}
	if !sess.Cancelled() {
		t.Errorf("Status = %v, want %v", sess.Status, mentor.SessionCancelled)
	}
	p, err := engine.Get(ctx, usr.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if p.XP != progress.XPSessionBooked {
		t.Errorf("XP = %d after cancel, want %d", p.XP, progress.XPSessionBooked)
	}
}

func Test_Service_Cancel_notFound(t *testing.T) {
	svc, _, db, usrRepo := setup(t)
	ctx := context.Background()

	mentors := inmemdb.SeedMentors(db, mentor.Mentor{Name: "Arjun Mehta", College: "AIIMS Delhi"})
	usr := testutil.CreateUser(t, usrRepo, "Ravi", "ravi", "ravi@test.cd", "", nil, true)
	other := testutil.CreateUser(t, usrRepo, "Meera", "meera", "meera@test.cd", "", nil, true)

	res, err := svc.Book(ctx, usr, mentor.NewSession{MentorID: mentors[0].ID, ScheduledDate: time.Now().AddDate(0, 0, 3)})
	if err != nil {
		t.Fatalf("Book() failed: %v", err)
	}

	tests := []struct {
		name      string
		sessionID int
		userID    string
	}{
		{name: "unknown session", sessionID: 404, userID: usr.ID},
		{name: "another user's session", sessionID: res.Session.ID, userID: other.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Cancel(ctx, tt.sessionID, tt.userID); err != mentor.ErrSessionNotFound {
				t.Errorf("Cancel() error = %v, want %v", err, mentor.ErrSessionNotFound)
			}
		})
	}
}
