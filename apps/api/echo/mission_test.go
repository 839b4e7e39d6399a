package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/campusconnect/backend/core/mission"
	"github.com/campusconnect/backend/tests"
)

func Test_missionApi_query(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)
	token := getToken(t, usr)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/missions")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("first read seeds the default set", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/missions", token)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var missions []mission.Mission
		if err := json.Unmarshal(rec.Body.Bytes(), &missions); err != nil {
			t.Fatalf("unmarshalling missions failed: %v", err)
		}
		if len(missions) != len(mission.DefaultMissions) {
			t.Fatalf("got %d missions, want %d", len(missions), len(mission.DefaultMissions))
		}
		for i, m := range missions {
			if m.Status != mission.StatusPending {
				t.Errorf("mission %d Status = %v, want %v", i, m.Status, mission.StatusPending)
			}
		}

		// second read returns the same set
		req, rec = newAuthRequest(http.MethodGet, "/v1/missions", token)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallObj(t, missions)}, rec)
	})
}

func Test_missionApi_toggle(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "Ravi", "ravi", "ravi@test.cd", "", nil, true)
	other := testutil.CreateUser(t, env.usrRepo, "Meera", "meera", "meera@test.cd", "", nil, true)
	token := getToken(t, usr)

	// seed via first read
	req, rec := newAuthRequest(http.MethodGet, "/v1/missions", token)
	env.app.ServeHTTP(rec, req)
	var missions []mission.Mission
	if err := json.Unmarshal(rec.Body.Bytes(), &missions); err != nil {
		t.Fatalf("unmarshalling missions failed: %v", err)
	}
	m := missions[0]
	path := fmt.Sprintf("/v1/missions/%d", m.ID)

	completed := marchallObj(t, map[string]bool{"completed": true})
	uncompleted := marchallObj(t, map[string]bool{"completed": false})

	t.Run("missing completed flag", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, token, marchallObj(t, map[string]string{}))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid request body"})}, rec)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/missions/lol", token, completed)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("another user's mission", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, getToken(t, other), completed)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("complete then uncomplete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, token, completed)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		var res mission.ToggleResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling ToggleResult failed: %v", err)
		}
		if res.XPChange != m.XPReward {
			t.Errorf("XPChange = %d, want %d", res.XPChange, m.XPReward)
		}
		if !res.Mission.Completed() {
			t.Errorf("Status = %v, want %v", res.Mission.Status, mission.StatusCompleted)
		}
		if res.Progress.XP != m.XPReward {
			t.Errorf("XP = %d, want %d", res.Progress.XP, m.XPReward)
		}

		req, rec = newAuthRequest(http.MethodPut, path, token, uncompleted)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusOK)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling ToggleResult failed: %v", err)
		}
		if res.XPChange != -m.XPReward {
			t.Errorf("XPChange = %d, want %d", res.XPChange, -m.XPReward)
		}
		if res.Progress.XP != 0 {
			t.Errorf("XP = %d, want 0", res.Progress.XP)
		}
	})
}
