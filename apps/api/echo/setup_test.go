package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusconnect/backend/core"
	"github.com/campusconnect/backend/core/college"
	"github.com/campusconnect/backend/core/mentor"
	"github.com/campusconnect/backend/core/mission"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/scholarship"
	"github.com/campusconnect/backend/core/user"
	"github.com/campusconnect/backend/services/email"
	"github.com/campusconnect/backend/services/logger"
	"github.com/campusconnect/backend/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testEnv struct {
	app     Server
	db      *inmemdb.DB
	usrRepo user.Repository
	engine  *progress.Engine
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	// error bodies render as structured JSON only outside debug mode
	core.Conf.Debug = false

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	usrRepo := inmemdb.NewUserRepository(db)

	// set up services
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	mailSvc := emailsvc.NewConsoleServiceMock()
	engine := progress.NewEngine(inmemdb.NewProgressRepository(db), logger)
	usrSvc := user.NewService(usrRepo, mailSvc, logger)
	missionSvc := mission.NewService(inmemdb.NewMissionRepository(db), engine)
	collegeSvc := college.NewService(inmemdb.NewCollegeRepository(db), engine)
	mentorSvc := mentor.NewService(inmemdb.NewMentorRepository(db), engine, mailSvc)
	scholarshipSvc := scholarship.NewService(inmemdb.NewScholarshipRepository(db))

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	// set up server
	app := NewServer(ServerDeps{
		Logger:         logger,
		UserSvc:        usrSvc,
		MissionSvc:     missionSvc,
		CollegeSvc:     collegeSvc,
		MentorSvc:      mentorSvc,
		ScholarshipSvc: scholarshipSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return &testEnv{app: app, db: db, usrRepo: usrRepo, engine: engine}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

// checkCodeAndData compares status and, when wantData is set, the JSON body.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if tt.wantCode == 0 {
		tt.wantCode = http.StatusOK
	}
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
