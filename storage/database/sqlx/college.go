package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/college"
)

const collegeColumns = `id, name, location, stream, state, rating, budget_range, budget_value, image_url, apply_link`

type collegeRepository struct {
	db *sqlx.DB
}

var _ college.Repository = (*collegeRepository)(nil) // interface compliance check

func NewCollegeRepository(db *sqlx.DB) college.Repository {
	return &collegeRepository{db: db}
}

func scanCollege(row sqlx.ColScanner) (college.College, error) {
	var col college.College
	err := row.Scan(&col.ID, &col.Name, &col.Location, &col.Stream, &col.State,
		&col.Rating, &col.BudgetRange, &col.BudgetValue, &col.ImageURL, &col.ApplyLink)
	return col, err
}

func (repo *collegeRepository) queryColleges(ctx context.Context, query string, args ...interface{}) ([]college.College, error) {
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying colleges")
	}
	defer func() { _ = rows.Close() }()

	var colleges []college.College
	for rows.Next() {
		col, err := scanCollege(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning college")
		}
		colleges = append(colleges, col)
	}
	return colleges, errors.Wrap(rows.Err(), "reading colleges")
}

func (repo *collegeRepository) QueryAllColleges(ctx context.Context) ([]college.College, error) {
	return repo.queryColleges(ctx, `SELECT `+collegeColumns+` FROM college ORDER BY rating DESC, name`)
}

func (repo *collegeRepository) GetCollegeByID(ctx context.Context, id int) (college.College, error) {
	col, err := scanCollege(repo.db.QueryRowxContext(ctx, `SELECT `+collegeColumns+` FROM college WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return college.College{}, college.ErrNotFound
		}
		return college.College{}, errors.Wrap(err, "getting college")
	}
	return col, nil
}

func (repo *collegeRepository) FilterColleges(ctx context.Context, filter college.QueryFilter) ([]college.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM college WHERE 1=1`
	var args argList

	if filter.Search != "" {
		p := args.add("%" + filter.Search + "%")
		query += ` AND (name ILIKE ` + p + ` OR location ILIKE ` + p + `)`
	}
	if filter.Stream != "" {
		query += ` AND LOWER(stream) = LOWER(` + args.add(filter.Stream) + `)`
	}
	if filter.State != "" {
		query += ` AND LOWER(state) = LOWER(` + args.add(filter.State) + `)`
	}
	if filter.MinRating > 0 {
		query += ` AND rating >= ` + args.add(filter.MinRating)
	}
	if filter.BudgetMin > 0 {
		query += ` AND budget_value >= ` + args.add(filter.BudgetMin)
	}
	if filter.BudgetMax > 0 {
		query += ` AND budget_value <= ` + args.add(filter.BudgetMax)
	}
	query += ` ORDER BY rating DESC, name`

	return repo.queryColleges(ctx, query, args...)
}

func (repo *collegeRepository) CreateRecentlyViewed(ctx context.Context, rv college.RecentlyViewed) (college.RecentlyViewed, error) {
	query := `
INSERT INTO recently_viewed_college (user_id, college_id, viewed_at)
VALUES ($1, $2, $3)
RETURNING id, user_id, college_id, viewed_at`
	err := repo.db.QueryRowxContext(ctx, query, rv.UserID, rv.CollegeID, rv.ViewedAt).
		Scan(&rv.ID, &rv.UserID, &rv.CollegeID, &rv.ViewedAt)
	if err != nil {
		return college.RecentlyViewed{}, errors.Wrap(err, "creating recently viewed")
	}
	return rv, nil
}

func (repo *collegeRepository) QueryRecentlyViewed(ctx context.Context, userID string, limit int) ([]college.RecentlyViewed, error) {
	query := `
SELECT rv.id, rv.user_id, rv.college_id, rv.viewed_at,
       c.id, c.name, c.location, c.stream, c.state, c.rating, c.budget_range, c.budget_value, c.image_url, c.apply_link
FROM recently_viewed_college rv
         JOIN college c ON c.id = rv.college_id
WHERE rv.user_id = $1
ORDER BY rv.viewed_at DESC, rv.id DESC
LIMIT $2`
	rows, err := repo.db.QueryxContext(ctx, query, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recently viewed")
	}
	defer func() { _ = rows.Close() }()

	var views []college.RecentlyViewed
	for rows.Next() {
		var rv college.RecentlyViewed
		err = rows.Scan(&rv.ID, &rv.UserID, &rv.CollegeID, &rv.ViewedAt,
			&rv.College.ID, &rv.College.Name, &rv.College.Location, &rv.College.Stream, &rv.College.State,
			&rv.College.Rating, &rv.College.BudgetRange, &rv.College.BudgetValue, &rv.College.ImageURL, &rv.College.ApplyLink)
		if err != nil {
			return nil, errors.Wrap(err, "scanning recently viewed")
		}
		views = append(views, rv)
	}
	return views, errors.Wrap(rows.Err(), "reading recently viewed")
}
