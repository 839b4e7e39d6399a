package scholarship

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/campusconnect/backend/core"
)

type Scholarship struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Eligibility string      `json:"eligibility"`
	Amount      string      `json:"amount"`
	Description null.String `json:"description"`
	LastDate    time.Time   `json:"last_date"`
	Link        string      `json:"link"`
}

type QueryFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
}
