package college

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/campusconnect/backend/core"
)

type College struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Stream      string      `json:"stream"`
	State       string      `json:"state"`
	Rating      float64     `json:"rating"`
	BudgetRange string      `json:"budget_range"`
	BudgetValue int         `json:"budget_value"`
	ImageURL    null.String `json:"image_url"`
	ApplyLink   string      `json:"apply_link"`
}

// RecentlyViewed records a user opening a college's detail view.
type RecentlyViewed struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	CollegeID int       `json:"college_id"`
	ViewedAt  time.Time `json:"viewed_at"` // UTC
	College   College   `json:"college"`
}

type QueryFilter struct {
	Search    string  `query:"search"`
	Stream    string  `query:"stream"`
	State     string  `query:"state"`
	MinRating float64 `query:"min_rating"`
	BudgetMin int     `query:"budget_min"`
	BudgetMax int     `query:"budget_max"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Stream == "" && qf.State == "" &&
		qf.MinRating == 0 && qf.BudgetMin == 0 && qf.BudgetMax == 0
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Stream = core.CleanString(qf.Stream)
	qf.State = core.CleanString(qf.State)
}
