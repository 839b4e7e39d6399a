package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/campusconnect/backend/core/scholarship"
)

type scholarshipRepository struct {
	db *scholarshipTable
}

var _ scholarship.Repository = (*scholarshipRepository)(nil) // interface compliance check

func NewScholarshipRepository(db *DB) scholarship.Repository {
	return &scholarshipRepository{db: db.scholarship}
}

// SeedScholarships loads fixture scholarships, assigning IDs. Test helper.
func SeedScholarships(db *DB, scholarships ...scholarship.Scholarship) []scholarship.Scholarship {
	db.scholarship.mutex.Lock()
	defer db.scholarship.mutex.Unlock()

	seeded := make([]scholarship.Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		s := s
		db.scholarship.pkCount++
		s.ID = db.scholarship.pkCount
		db.scholarship.table[s.ID] = &s
		seeded = append(seeded, s)
	}
	return seeded
}

func (repo *scholarshipRepository) query() []scholarship.Scholarship {
	scholarships := make([]scholarship.Scholarship, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		scholarships = append(scholarships, *s)
	}
	sort.Slice(scholarships, func(i, j int) bool {
		if !scholarships[i].LastDate.Equal(scholarships[j].LastDate) {
			return scholarships[i].LastDate.Before(scholarships[j].LastDate)
		}
		return scholarships[i].Name < scholarships[j].Name
	})
	return scholarships
}

func (repo *scholarshipRepository) QueryAllScholarships(_ context.Context) ([]scholarship.Scholarship, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *scholarshipRepository) FilterScholarships(_ context.Context, filter scholarship.QueryFilter) ([]scholarship.Scholarship, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var scholarships []scholarship.Scholarship
	for _, s := range repo.query() {
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(s.Name), q) &&
				!strings.Contains(strings.ToLower(s.Eligibility), q) {
				continue
			}
		}
		if filter.Category != "" && !strings.EqualFold(s.Category, filter.Category) {
			continue
		}
		scholarships = append(scholarships, s)
	}
	return scholarships, nil
}
