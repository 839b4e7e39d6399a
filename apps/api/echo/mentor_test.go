package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/campusconnect/backend/core/mentor"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func seedMentors(env *testEnv) []mentor.Mentor {
	return inmemdb.SeedMentors(env.db,
		mentor.Mentor{Name: "Priya Sharma", College: "IIT Delhi", Specialization: "Computer Science", Rating: 4.9, SessionsCompleted: 120},
		mentor.Mentor{Name: "Arjun Mehta", College: "AIIMS Delhi", Specialization: "Medicine", Rating: 4.7, SessionsCompleted: 85},
	)
}

func Test_mentorApi_query(t *testing.T) {
	env := setup(t)
	mentors := seedMentors(env)

	usr := testutil.CreateUser(t, env.usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)

	tests := []httpTest{
		{name: "auth required", path: "/v1/mentors", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "all by rating", path: "/v1/mentors", token: getToken(t, usr), wantData: marchallList(t, mentors[0], mentors[1])},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_mentorApi_bookAndCancel(t *testing.T) {
	env := setup(t)
	mentors := seedMentors(env)

	usr := testutil.CreateUser(t, env.usrRepo, "Ravi", "ravi", "ravi@test.cd", "", nil, true)
	other := testutil.CreateUser(t, env.usrRepo, "Meera", "meera", "meera@test.cd", "", nil, true)
	token := getToken(t, usr)

	date := time.Now().AddDate(0, 0, 7).UTC().Truncate(time.Second)
	body := marchallObj(t, mentor.NewSession{MentorID: mentors[0].ID, ScheduledDate: date})

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, marchallObj(t, map[string]string{}))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v, want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown mentor", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token,
			marchallObj(t, mentor.NewSession{MentorID: 404, ScheduledDate: date}))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	var booked mentor.BookResult

	t.Run("book awards xp", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, body)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &booked); err != nil {
			t.Fatalf("unmarshalling BookResult failed: %v", err)
		}
		if booked.Session.Status != mentor.SessionConfirmed {
			t.Errorf("Status = %v, want %v", booked.Session.Status, mentor.SessionConfirmed)
		}
		if booked.Session.Mentor.Name != mentors[0].Name {
			t.Errorf("Mentor = %v, want %v", booked.Session.Mentor.Name, mentors[0].Name)
		}
		if booked.Progress.XP != progress.XPSessionBooked {
			t.Errorf("XP = %d, want %d", booked.Progress.XP, progress.XPSessionBooked)
		}

		// session shows up in the caller's list
		req, rec = newAuthRequest(http.MethodGet, "/v1/sessions", token)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallList(t, booked.Session)}, rec)
	})

	t.Run("cancel keeps xp", func(t *testing.T) {
		path := fmt.Sprintf("/v1/sessions/%d", booked.Session.ID)

		// not the owner
		req, rec := newAuthRequest(http.MethodDelete, path, getToken(t, other))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

		req, rec = newAuthRequest(http.MethodDelete, path, token)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var sess mentor.Session
		if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
			t.Fatalf("unmarshalling Session failed: %v", err)
		}
		if !sess.Cancelled() {
			t.Errorf("Status = %v, want %v", sess.Status, mentor.SessionCancelled)
		}

		p, err := env.engine.Get(req.Context(), usr.ID)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if p.XP != progress.XPSessionBooked {
			t.Errorf("XP = %d after cancel, want %d", p.XP, progress.XPSessionBooked)
		}
	})
}
