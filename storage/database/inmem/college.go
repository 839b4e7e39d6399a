package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/campusconnect/backend/core/college"
)

type collegeRepository struct {
	db *collegeTable
}

var _ college.Repository = (*collegeRepository)(nil) // interface compliance check

func NewCollegeRepository(db *DB) college.Repository {
	return &collegeRepository{db: db.college}
}

// SeedColleges loads fixture colleges, assigning IDs. Test helper.
func SeedColleges(db *DB, colleges ...college.College) []college.College {
	db.college.mutex.Lock()
	defer db.college.mutex.Unlock()

	seeded := make([]college.College, 0, len(colleges))
	for _, col := range colleges {
		col := col
		db.college.pkCount++
		col.ID = db.college.pkCount
		db.college.table[col.ID] = &col
		seeded = append(seeded, col)
	}
	return seeded
}

func (repo *collegeRepository) query() []college.College {
	colleges := make([]college.College, 0, len(repo.db.table))
	for _, col := range repo.db.table {
		colleges = append(colleges, *col)
	}
	sort.Slice(colleges, func(i, j int) bool {
		if colleges[i].Rating != colleges[j].Rating {
			return colleges[i].Rating > colleges[j].Rating
		}
		return colleges[i].Name < colleges[j].Name
	})
	return colleges
}

func (repo *collegeRepository) QueryAllColleges(_ context.Context) ([]college.College, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *collegeRepository) GetCollegeByID(_ context.Context, id int) (college.College, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if col, ok := repo.db.table[id]; ok {
		return *col, nil
	}
	return college.College{}, college.ErrNotFound
}

func (repo *collegeRepository) FilterColleges(_ context.Context, filter college.QueryFilter) ([]college.College, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var colleges []college.College
	for _, col := range repo.query() {
		if matchesCollegeFilter(col, filter) {
			colleges = append(colleges, col)
		}
	}
	return colleges, nil
}

func matchesCollegeFilter(col college.College, filter college.QueryFilter) bool {
	if filter.Search != "" {
		s := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(col.Name), s) &&
			!strings.Contains(strings.ToLower(col.Location), s) {
			return false
		}
	}
	if filter.Stream != "" && !strings.EqualFold(col.Stream, filter.Stream) {
		return false
	}
	if filter.State != "" && !strings.EqualFold(col.State, filter.State) {
		return false
	}
	if filter.MinRating > 0 && col.Rating < filter.MinRating {
		return false
	}
	if filter.BudgetMin > 0 && col.BudgetValue < filter.BudgetMin {
		return false
	}
	if filter.BudgetMax > 0 && col.BudgetValue > filter.BudgetMax {
		return false
	}
	return true
}

func (repo *collegeRepository) CreateRecentlyViewed(_ context.Context, rv college.RecentlyViewed) (college.RecentlyViewed, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.viewsCount++
	rv.ID = repo.db.viewsCount
	repo.db.views[rv.ID] = &rv
	return rv, nil
}

func (repo *collegeRepository) QueryRecentlyViewed(_ context.Context, userID string, limit int) ([]college.RecentlyViewed, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var views []college.RecentlyViewed
	for _, rv := range repo.db.views {
		if rv.UserID != userID {
			continue
		}
		view := *rv
		if col, ok := repo.db.table[rv.CollegeID]; ok {
			view.College = *col
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID > views[j].ID })
	if len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}
