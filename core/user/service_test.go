package user_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/user"
	"github.com/campusconnect/backend/services/email"
	"github.com/campusconnect/backend/services/logger"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func setup(t *testing.T) (*user.Service, *inmemdb.DB) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	svc := user.NewService(
		inmemdb.NewUserRepository(db),
		emailsvc.NewConsoleServiceMock(),
		logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
	)
	return svc, db
}

func Test_Service_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{
		Name:            "Asha Patel",
		Username:        "ashapatel",
		Email:           "asha@test.cd",
		Password:        "LordOfTheRings",
		PasswordConfirm: "LordOfTheRings",
		Stream:          "engineering",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if usr.ID == "" {
		t.Error("ID not assigned")
	}
	if usr.XP != 0 {
		t.Errorf("XP = %d, want 0", usr.XP)
	}
	if usr.Level != 1 {
		t.Errorf("Level = %d, want 1", usr.Level)
	}
	if !usr.Active() {
		t.Error("new account not active")
	}
	if !usr.IsStudent() || usr.IsAdmin() {
		t.Errorf("Roles = %v, want student only", usr.Roles)
	}
	if err = usr.CheckPassword("LordOfTheRings"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}

	got, err := svc.GetByUsernameOrEmail(ctx, "ashapatel")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail() failed: %v", err)
	}
	if got.ID != usr.ID {
		t.Errorf("got ID %v, want %v", got.ID, usr.ID)
	}
}

func Test_Service_GetByID_notFound(t *testing.T) {
	svc, _ := setup(t)

	if _, err := svc.GetByID(context.Background(), "who-dis"); err != user.ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, user.ErrNotFound)
	}
}

func Test_Service_Leaderboard(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	usrRepo := inmemdb.NewUserRepository(db)
	engine := progress.NewEngine(
		inmemdb.NewProgressRepository(db),
		logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
	)

	low := testutil.CreateUser(t, usrRepo, "Low", "lowscore", "low@test.cd", "", nil, true)
	high := testutil.CreateUser(t, usrRepo, "High", "highscore", "high@test.cd", "", nil, true)
	mid := testutil.CreateUser(t, usrRepo, "Mid", "midscore", "mid@test.cd", "", nil, true)
	inactive := testutil.CreateUser(t, usrRepo, "Gone", "gonescore", "gone@test.cd", "", nil, false)

	award := func(id string, delta int) {
		if _, err := engine.ApplyDelta(ctx, id, delta, progress.ReasonMissionCompleted); err != nil {
			t.Fatalf("ApplyDelta() failed: %v", err)
		}
	}
	award(low.ID, 10)
	award(high.ID, 120)
	award(mid.ID, 45)
	award(inactive.ID, 500)

	entries, err := svc.Leaderboard(ctx, 0 /* default limit */)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	want := []struct {
		id    string
		xp    int
		level int
	}{
		{id: high.ID, xp: 120, level: 2},
		{id: mid.ID, xp: 45, level: 1},
		{id: low.ID, xp: 10, level: 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d Rank = %d, want %d", i, e.Rank, i+1)
		}
		if e.ID != want[i].id {
			t.Errorf("entry %d ID = %v, want %v", i, e.ID, want[i].id)
		}
		if e.XP != want[i].xp || e.Level != want[i].level {
			t.Errorf("entry %d = xp %d lvl %d, want xp %d lvl %d", i, e.XP, e.Level, want[i].xp, want[i].level)
		}
	}

	// explicit limit
	entries, err = svc.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func Test_Service_Update_keepsProgress(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	usrRepo := inmemdb.NewUserRepository(db)
	engine := progress.NewEngine(
		inmemdb.NewProgressRepository(db),
		logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
	)

	usr := testutil.CreateUser(t, usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)
	if _, err := engine.ApplyDelta(ctx, usr.ID, 150, progress.ReasonSessionBooked); err != nil {
		t.Fatalf("ApplyDelta() failed: %v", err)
	}

	got, err := svc.Update(ctx, usr.ID, user.UpdateUser{Name: "Asha P", Stream: "medical"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.Name != "Asha P" || got.Stream != "medical" {
		t.Errorf("Update() = %+v, want name and stream changed", got)
	}
	if got.XP != 150 || got.Level != 2 {
		t.Errorf("progress = xp %d lvl %d, want xp 150 lvl 2", got.XP, got.Level)
	}
}
