package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/campusconnect/backend/core/college"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func seedColleges(env *testEnv) []college.College {
	return inmemdb.SeedColleges(env.db,
		college.College{Name: "IIT Delhi", Location: "New Delhi", Stream: "engineering", State: "delhi", Rating: 4.8, BudgetRange: "₹2-3 LPA", BudgetValue: 250000},
		college.College{Name: "AIIMS Delhi", Location: "New Delhi", Stream: "medical", State: "delhi", Rating: 4.9, BudgetRange: "₹1-2 LPA", BudgetValue: 150000},
		college.College{Name: "NIT Trichy", Location: "Tiruchirappalli", Stream: "engineering", State: "tamil nadu", Rating: 4.5, BudgetRange: "₹1-2 LPA", BudgetValue: 180000},
	)
}

func Test_collegeApi_query(t *testing.T) {
	env := setup(t)
	cols := seedColleges(env)

	usr := testutil.CreateUser(t, env.usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)
	token := getToken(t, usr)

	aiims, iit, nit := cols[1], cols[0], cols[2]

	tests := []httpTest{
		{name: "auth required", path: "/v1/colleges", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "all by rating", path: "/v1/colleges", token: token, wantData: marchallList(t, aiims, iit, nit)},
		{name: "search", path: "/v1/colleges?search=trichy", token: token, wantData: marchallList(t, nit)},
		{name: "stream", path: "/v1/colleges?stream=engineering", token: token, wantData: marchallList(t, iit, nit)},
		{name: "min rating", path: "/v1/colleges?min_rating=4.6", token: token, wantData: marchallList(t, aiims, iit)},
		{name: "no match", path: "/v1/colleges?search=oxford", token: token, wantData: marchallList(t, []interface{}{}...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_collegeApi_retrieve(t *testing.T) {
	env := setup(t)
	cols := seedColleges(env)

	usr := testutil.CreateUser(t, env.usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "ok", path: fmt.Sprintf("/v1/colleges/%d", cols[0].ID), token: token, wantData: marchallObj(t, cols[0])},
		{name: "unknown id", path: "/v1/colleges/404", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "non-numeric id", path: "/v1/colleges/lol", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_collegeApi_view(t *testing.T) {
	env := setup(t)
	cols := seedColleges(env)

	usr := testutil.CreateUser(t, env.usrRepo, "Ravi", "ravi", "ravi@test.cd", "", nil, true)
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/colleges/%d/view", cols[0].ID), token)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
	}
	var res college.ViewResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshalling ViewResult failed: %v", err)
	}
	if res.Viewed.CollegeID != cols[0].ID {
		t.Errorf("CollegeID = %d, want %d", res.Viewed.CollegeID, cols[0].ID)
	}
	if res.Progress.XP != progress.XPCollegeViewed {
		t.Errorf("XP = %d, want %d", res.Progress.XP, progress.XPCollegeViewed)
	}

	// the view lands in the recent list, most recent first
	req, rec = newAuthRequest(http.MethodGet, "/v1/colleges/recent", token)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
	}
	var recent []college.RecentlyViewed
	if err := json.Unmarshal(rec.Body.Bytes(), &recent); err != nil {
		t.Fatalf("unmarshalling recent views failed: %v", err)
	}
	if len(recent) != 1 || recent[0].CollegeID != cols[0].ID {
		t.Errorf("recent = %+v, want the single recorded view", recent)
	}

	// unknown college
	req, rec = newAuthRequest(http.MethodPost, "/v1/colleges/404/view", token)
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}
