package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core"
	"github.com/campusconnect/backend/core/user"
)

const userColumns = `id, name, username, email, gender, age, phone, education_background,
percentage, stream, preferred_states, roles, xp, level, is_active, password_hash,
last_login, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func scanUser(row sqlx.ColScanner) (user.User, error) {
	var usr user.User
	err := row.Scan(
		&usr.ID, &usr.Name, &usr.Username, &usr.Email, &usr.Gender, &usr.Age, &usr.Phone,
		&usr.EducationBackground, &usr.Percentage, &usr.Stream,
		pq.Array(&usr.PreferredStates), pq.Array(&usr.Roles),
		&usr.XP, &usr.Level, &usr.IsActive, &usr.PasswordHash,
		&usr.LastLogin, &usr.CreatedAt, &usr.UpdatedAt,
	)
	return usr, err
}

func (repo *userRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	defer func() { _ = rows.Close() }()

	var users []user.User
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning user")
		}
		users = append(users, usr)
	}
	return users, errors.Wrap(rows.Err(), "reading users")
}

func (repo *userRepository) getUser(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	usr, err := scanUser(repo.db.QueryRowxContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM "user" WHERE (LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2))`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, len(excludedUsers))
		for i, usr := range excludedUsers {
			ids[i] = usr.ID
		}
		query += ` AND id != ALL($3)`
		args = append(args, pq.Array(ids))
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var uname, mail string
		if err = rows.Scan(&uname, &mail); err != nil {
			return errors.Wrap(err, "checking uniqueness")
		}
		if strings.EqualFold(mail, email) {
			return user.ErrEmailExists
		}
		if strings.EqualFold(uname, username) {
			return user.ErrUsernameExists
		}
	}
	return errors.Wrap(rows.Err(), "checking uniqueness")
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
INSERT INTO "user" (id, name, username, email, gender, age, phone, education_background,
                    percentage, stream, preferred_states, roles, xp, level, is_active,
                    password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING ` + userColumns
	return repo.getUser(ctx, query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.Gender, usr.Age, usr.Phone,
		usr.EducationBackground, usr.Percentage, usr.Stream,
		pq.Array(usr.PreferredStates), pq.Array(usr.Roles),
		usr.XP, usr.Level, usr.Active(), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
	)
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return repo.queryUsers(ctx, `SELECT `+userColumns+` FROM "user" ORDER BY created_at`)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.getUser(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id)
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return repo.getUser(ctx, `SELECT `+userColumns+` FROM "user" WHERE LOWER(username) = LOWER($1)`, username)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.getUser(ctx, `SELECT `+userColumns+` FROM "user" WHERE LOWER(email) = LOWER($1)`, email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1)`
	return repo.getUser(ctx, query, username)
}

// orderableUserFields whitelists the columns exposed via the ordering
// query param; everything else is silently dropped.
var orderableUserFields = map[string]bool{
	"name":       true,
	"username":   true,
	"email":      true,
	"stream":     true,
	"xp":         true,
	"level":      true,
	"created_at": true,
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter, orderings ...core.DBOrdering) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE 1=1`
	var args argList

	if filter.Search != "" {
		p := args.add("%" + filter.Search + "%")
		query += ` AND (name ILIKE ` + p + ` OR username ILIKE ` + p + ` OR email ILIKE ` + p + `)`
	}
	if len(filter.Roles) > 0 {
		query += ` AND roles && ` + args.add(pq.Array(filter.Roles))
	}
	if filter.Stream != "" {
		query += ` AND LOWER(stream) = LOWER(` + args.add(filter.Stream) + `)`
	}
	if filter.IsActive != nil {
		query += ` AND is_active = ` + args.add(*filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		query += ` AND created_at >= ` + args.add(filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		query += ` AND created_at <= ` + args.add(filter.CreatedTo)
	}

	var orderBys []string
	for _, ord := range orderings {
		if orderableUserFields[ord.Field] {
			orderBys = append(orderBys, ord.String())
		}
	}
	if len(orderBys) == 0 {
		orderBys = append(orderBys, "created_at ASC")
	}
	query += ` ORDER BY ` + strings.Join(orderBys, ", ")

	return repo.queryUsers(ctx, query, args...)
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	// xp/level are deliberately absent: the progress engine owns them.
	query := `
UPDATE "user"
SET name                 = COALESCE(NULLIF($2, ''), name),
    username             = COALESCE(NULLIF($3, ''), username),
    email                = COALESCE(NULLIF($4, ''), email),
    gender               = COALESCE(NULLIF($5, ''), gender),
    age                  = COALESCE(NULLIF($6, 0), age),
    phone                = COALESCE(NULLIF($7, ''), phone),
    education_background = COALESCE(NULLIF($8, ''), education_background),
    percentage           = COALESCE(NULLIF($9, 0.0), percentage),
    stream               = COALESCE(NULLIF($10, ''), stream),
    preferred_states     = CASE WHEN $11::TEXT[] IS NULL THEN preferred_states ELSE $11::TEXT[] END,
    roles                = CASE WHEN $12::TEXT[] IS NULL THEN roles ELSE $12::TEXT[] END,
    password_hash        = CASE WHEN $13::BYTEA IS NULL THEN password_hash ELSE $13::BYTEA END,
    is_active            = COALESCE($14, is_active),
    last_login           = COALESCE($15, last_login),
    updated_at           = $16
WHERE id = $1
RETURNING ` + userColumns

	var states, roles interface{}
	if usr.PreferredStates != nil {
		states = pq.Array(usr.PreferredStates)
	}
	if usr.Roles != nil {
		roles = pq.Array(usr.Roles)
	}
	var hash interface{}
	if len(usr.PasswordHash) > 0 {
		hash = usr.PasswordHash
	}

	return repo.getUser(ctx, query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.Gender, usr.Age, usr.Phone,
		usr.EducationBackground, usr.Percentage, usr.Stream, states, roles, hash,
		isActive, usr.LastLogin, usr.UpdatedAt,
	)
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting users")
}

func (repo *userRepository) QueryLeaderboard(ctx context.Context, limit int) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE is_active ORDER BY xp DESC, created_at LIMIT $1`
	return repo.queryUsers(ctx, query, limit)
}
