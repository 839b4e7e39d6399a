package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/scholarship"
)

const scholarshipColumns = `id, name, category, eligibility, amount, description, last_date, link`

type scholarshipRepository struct {
	db *sqlx.DB
}

var _ scholarship.Repository = (*scholarshipRepository)(nil) // interface compliance check

func NewScholarshipRepository(db *sqlx.DB) scholarship.Repository {
	return &scholarshipRepository{db: db}
}

func (repo *scholarshipRepository) queryScholarships(ctx context.Context, query string, args ...interface{}) ([]scholarship.Scholarship, error) {
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying scholarships")
	}
	defer func() { _ = rows.Close() }()

	var scholarships []scholarship.Scholarship
	for rows.Next() {
		var s scholarship.Scholarship
		err = rows.Scan(&s.ID, &s.Name, &s.Category, &s.Eligibility, &s.Amount, &s.Description, &s.LastDate, &s.Link)
		if err != nil {
			return nil, errors.Wrap(err, "scanning scholarship")
		}
		scholarships = append(scholarships, s)
	}
	return scholarships, errors.Wrap(rows.Err(), "reading scholarships")
}

func (repo *scholarshipRepository) QueryAllScholarships(ctx context.Context) ([]scholarship.Scholarship, error) {
	return repo.queryScholarships(ctx, `SELECT `+scholarshipColumns+` FROM scholarship ORDER BY last_date, name`)
}

func (repo *scholarshipRepository) FilterScholarships(ctx context.Context, filter scholarship.QueryFilter) ([]scholarship.Scholarship, error) {
	query := `SELECT ` + scholarshipColumns + ` FROM scholarship WHERE 1=1`
	var args argList

	if filter.Search != "" {
		p := args.add("%" + filter.Search + "%")
		query += ` AND (name ILIKE ` + p + ` OR eligibility ILIKE ` + p + `)`
	}
	if filter.Category != "" {
		query += ` AND LOWER(category) = LOWER(` + args.add(filter.Category) + `)`
	}
	query += ` ORDER BY last_date, name`

	return repo.queryScholarships(ctx, query, args...)
}
