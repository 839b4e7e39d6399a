package inmemdb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/campusconnect/backend/core/mission"
)

type missionRepository struct {
	db *missionTable
}

var _ mission.Repository = (*missionRepository)(nil) // interface compliance check

func NewMissionRepository(db *DB) mission.Repository {
	return &missionRepository{db: db.mission}
}

func (repo *missionRepository) GetMission(_ context.Context, id int) (mission.Mission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return mission.Mission{}, mission.ErrNotFound
}

func (repo *missionRepository) QueryUserMissions(_ context.Context, userID string) ([]mission.Mission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var missions []mission.Mission
	for _, m := range repo.db.table {
		if m.UserID == userID {
			missions = append(missions, *m)
		}
	}
	sort.Slice(missions, func(i, j int) bool { return missions[i].ID < missions[j].ID })
	return missions, nil
}

func (repo *missionRepository) CreateMissions(_ context.Context, missions ...mission.Mission) ([]mission.Mission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	created := make([]mission.Mission, 0, len(missions))
	for _, m := range missions {
		m := m
		repo.db.pkCount++
		m.ID = repo.db.pkCount
		repo.db.table[m.ID] = &m
		created = append(created, m)
	}
	return created, nil
}

func (repo *missionRepository) UpdateMissionStatus(_ context.Context, id int, status string, completedOn null.Time) (mission.Mission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	m, ok := repo.db.table[id]
	if !ok {
		return mission.Mission{}, mission.ErrNotFound
	}
	m.Status = status
	m.CompletedOn = completedOn
	return *m, nil
}
