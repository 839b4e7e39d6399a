package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campusconnect/backend/core/mission"
)

const missionColumns = `id, user_id, mission_text, mission_type, xp_reward, status, completed_on, created_at`

type missionRepository struct {
	db *sqlx.DB
}

var _ mission.Repository = (*missionRepository)(nil) // interface compliance check

func NewMissionRepository(db *sqlx.DB) mission.Repository {
	return &missionRepository{db: db}
}

func scanMission(row sqlx.ColScanner) (mission.Mission, error) {
	var m mission.Mission
	err := row.Scan(&m.ID, &m.UserID, &m.Text, &m.Type, &m.XPReward, &m.Status, &m.CompletedOn, &m.CreatedAt)
	return m, err
}

func (repo *missionRepository) GetMission(ctx context.Context, id int) (mission.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM mission WHERE id = $1`
	m, err := scanMission(repo.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return mission.Mission{}, mission.ErrNotFound
		}
		return mission.Mission{}, errors.Wrap(err, "getting mission")
	}
	return m, nil
}

func (repo *missionRepository) QueryUserMissions(ctx context.Context, userID string) ([]mission.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM mission WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := repo.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying missions")
	}
	defer func() { _ = rows.Close() }()

	var missions []mission.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning mission")
		}
		missions = append(missions, m)
	}
	return missions, errors.Wrap(rows.Err(), "reading missions")
}

func (repo *missionRepository) CreateMissions(ctx context.Context, missions ...mission.Mission) ([]mission.Mission, error) {
	created := make([]mission.Mission, 0, len(missions))
	query := `
INSERT INTO mission (user_id, mission_text, mission_type, xp_reward, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + missionColumns
	for _, m := range missions {
		row := repo.db.QueryRowxContext(ctx, query, m.UserID, m.Text, m.Type, m.XPReward, m.Status, m.CreatedAt)
		m, err := scanMission(row)
		if err != nil {
			return nil, errors.Wrap(err, "creating mission")
		}
		created = append(created, m)
	}
	return created, nil
}

func (repo *missionRepository) UpdateMissionStatus(ctx context.Context, id int, status string, completedOn null.Time) (mission.Mission, error) {
	query := `UPDATE mission SET status = $2, completed_on = $3 WHERE id = $1 RETURNING ` + missionColumns
	m, err := scanMission(repo.db.QueryRowxContext(ctx, query, id, status, completedOn))
	if err != nil {
		if err == sql.ErrNoRows {
			return mission.Mission{}, mission.ErrNotFound
		}
		return mission.Mission{}, errors.Wrap(err, "updating mission status")
	}
	return m, nil
}
