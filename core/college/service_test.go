package college_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/campusconnect/backend/core/college"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/user"
	"github.com/campusconnect/backend/services/logger"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func setup(t *testing.T) (*college.Service, *inmemdb.DB, user.Repository) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	engine := progress.NewEngine(
		inmemdb.NewProgressRepository(db),
		logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
	)
	svc := college.NewService(inmemdb.NewCollegeRepository(db), engine)
	return svc, db, inmemdb.NewUserRepository(db)
}

func seedCatalog(db *inmemdb.DB) []college.College {
	return inmemdb.SeedColleges(db,
		college.College{Name: "IIT Delhi", Location: "New Delhi", Stream: "engineering", State: "delhi", Rating: 4.8, BudgetRange: "₹2-3 LPA", BudgetValue: 250000},
		college.College{Name: "AIIMS Delhi", Location: "New Delhi", Stream: "medical", State: "delhi", Rating: 4.9, BudgetRange: "₹1-2 LPA", BudgetValue: 150000},
		college.College{Name: "NIT Trichy", Location: "Tiruchirappalli", Stream: "engineering", State: "tamil nadu", Rating: 4.5, BudgetRange: "₹1-2 LPA", BudgetValue: 180000},
	)
}

func Test_Service_Filter(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()
	seedCatalog(db)

	tests := []struct {
		name      string
		filter    college.QueryFilter
		wantNames []string
	}{
		{name: "empty filter returns all by rating", filter: college.QueryFilter{}, wantNames: []string{"AIIMS Delhi", "IIT Delhi", "NIT Trichy"}},
		{name: "search by name", filter: college.QueryFilter{Search: "iit"}, wantNames: []string{"IIT Delhi"}},
		{name: "stream", filter: college.QueryFilter{Stream: "Engineering"}, wantNames: []string{"IIT Delhi", "NIT Trichy"}},
		{name: "state", filter: college.QueryFilter{State: "Tamil Nadu"}, wantNames: []string{"NIT Trichy"}},
		{name: "min rating", filter: college.QueryFilter{MinRating: 4.6}, wantNames: []string{"AIIMS Delhi", "IIT Delhi"}},
		{name: "budget bounds", filter: college.QueryFilter{BudgetMin: 160000, BudgetMax: 200000}, wantNames: []string{"NIT Trichy"}},
		{name: "no match", filter: college.QueryFilter{Search: "oxford"}, wantNames: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Filter() failed: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("got %d colleges, want %d", len(got), len(tt.wantNames))
			}
			for i, col := range got {
				if col.Name != tt.wantNames[i] {
					t.Errorf("college %d = %v, want %v", i, col.Name, tt.wantNames[i])
				}
			}
		})
	}
}

func Test_Service_View(t *testing.T) {
	svc, db, usrRepo := setup(t)
	ctx := context.Background()
	cols := seedCatalog(db)

	usr := testutil.CreateUser(t, usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)

	res, err := svc.View(ctx, usr.ID, cols[0].ID)
	if err != nil {
		t.Fatalf("View() failed: %v", err)
	}
	if res.Viewed.CollegeID != cols[0].ID {
		t.Errorf("CollegeID = %d, want %d", res.Viewed.CollegeID, cols[0].ID)
	}
	if res.Progress.XP != progress.XPCollegeViewed {
		t.Errorf("XP = %d, want %d", res.Progress.XP, progress.XPCollegeViewed)
	}

	recent, err := svc.RecentlyViewed(ctx, usr.ID)
	if err != nil {
		t.Fatalf("RecentlyViewed() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d recent views, want 1", len(recent))
	}
	if recent[0].College.Name != cols[0].Name {
		t.Errorf("College = %v, want %v", recent[0].College.Name, cols[0].Name)
	}

	if _, err = svc.View(ctx, usr.ID, 404); err != college.ErrNotFound {
		t.Errorf("View() error = %v, want %v", err, college.ErrNotFound)
	}
}

func Test_Service_RecentlyViewed_capped(t *testing.T) {
	svc, db, usrRepo := setup(t)
	ctx := context.Background()
	cols := seedCatalog(db)

	usr := testutil.CreateUser(t, usrRepo, "Ravi", "ravi", "ravi@test.cd", "", nil, true)

	// 7 views over the 3-college catalog; only the latest 5 survive
	viewed := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		col := cols[i%len(cols)]
		if _, err := svc.View(ctx, usr.ID, col.ID); err != nil {
			t.Fatalf("View() failed: %v", err)
		}
		viewed = append(viewed, col.ID)
	}

	recent, err := svc.RecentlyViewed(ctx, usr.ID)
	if err != nil {
		t.Fatalf("RecentlyViewed() failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("got %d recent views, want 5", len(recent))
	}
	for i, rv := range recent { // most recent first
		want := viewed[len(viewed)-1-i]
		if rv.CollegeID != want {
			t.Errorf("recent %d CollegeID = %d, want %d", i, rv.CollegeID, want)
		}
	}
}
