package college

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/campusconnect/backend/core/progress"
)

var (
	ErrNotFound = errors.New("college not found")
)

// recentViewLimit caps how many recently-viewed entries are surfaced.
const recentViewLimit = 5

type (
	Repository interface {
		QueryAllColleges(ctx context.Context) ([]College, error)
		GetCollegeByID(ctx context.Context, id int) (College, error)
		// FilterColleges applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on College.Name or College.Location.
		FilterColleges(ctx context.Context, filter QueryFilter) ([]College, error)
		CreateRecentlyViewed(ctx context.Context, rv RecentlyViewed) (RecentlyViewed, error)
		QueryRecentlyViewed(ctx context.Context, userID string, limit int) ([]RecentlyViewed, error)
	}

	Service struct {
		repo   Repository
		engine *progress.Engine
	}

	// ViewResult couples the recorded view with the XP award outcome.
	ViewResult struct {
		Viewed   RecentlyViewed  `json:"viewed"`
		Progress progress.Result `json:"progress"`
	}
)

func NewService(repo Repository, engine *progress.Engine) *Service {
	return &Service{repo: repo, engine: engine}
}

func (svc *Service) QueryAll(ctx context.Context) ([]College, error) {
	return svc.repo.QueryAllColleges(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (College, error) {
	return svc.repo.GetCollegeByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]College, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllColleges(ctx)
	}
	return svc.repo.FilterColleges(ctx, filter)
}

// View records a college view for the user and grants the flat XP award.
func (svc *Service) View(ctx context.Context, userID string, collegeID int) (ViewResult, error) {
	col, err := svc.repo.GetCollegeByID(ctx, collegeID)
	if err != nil {
		if err == ErrNotFound {
			return ViewResult{}, err
		}
		return ViewResult{}, pkgerrors.Wrap(err, "getting college")
	}

	rv, err := svc.repo.CreateRecentlyViewed(ctx, RecentlyViewed{
		UserID:    userID,
		CollegeID: col.ID,
		ViewedAt:  time.Now().UTC(),
		College:   col,
	})
	if err != nil {
		return ViewResult{}, pkgerrors.Wrap(err, "recording college view")
	}

	res, err := svc.engine.AwardCollegeViewed(ctx, userID)
	if err != nil {
		return ViewResult{}, pkgerrors.Wrap(err, "awarding view xp")
	}
	return ViewResult{Viewed: rv, Progress: res}, nil
}

// RecentlyViewed returns the user's latest views, most recent first.
func (svc *Service) RecentlyViewed(ctx context.Context, userID string) ([]RecentlyViewed, error) {
	return svc.repo.QueryRecentlyViewed(ctx, userID, recentViewLimit)
}
