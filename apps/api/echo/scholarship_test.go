package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/campusconnect/backend/core/scholarship"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func Test_scholarshipApi_query(t *testing.T) {
	env := setup(t)

	seeded := inmemdb.SeedScholarships(env.db,
		scholarship.Scholarship{Name: "NSP Merit Scholarship", Category: "merit", Eligibility: "Class 12 with 80%+", Amount: "₹12,000/year", LastDate: time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)},
		scholarship.Scholarship{Name: "INSPIRE Scholarship", Category: "merit", Eligibility: "Top 1% in Class 12, science stream", Amount: "₹80,000/year", LastDate: time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)},
		scholarship.Scholarship{Name: "Post Matric Scholarship", Category: "need-based", Eligibility: "Family income below ₹2.5 LPA", Amount: "₹10,000/year", LastDate: time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)},
	)
	nsp, inspire, postMatric := seeded[0], seeded[1], seeded[2]

	usr := testutil.CreateUser(t, env.usrRepo, "Asha", "asha", "asha@test.cd", "", nil, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "auth required", path: "/v1/scholarships", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "all by deadline", path: "/v1/scholarships", token: token, wantData: marchallList(t, nsp, postMatric, inspire)},
		{name: "search", path: "/v1/scholarships?search=income", token: token, wantData: marchallList(t, postMatric)},
		{name: "category", path: "/v1/scholarships?category=merit", token: token, wantData: marchallList(t, nsp, inspire)},
		{name: "no match", path: "/v1/scholarships?search=rhodes", token: token, wantData: marchallList(t, []interface{}{}...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
