// Package inmemdb provides map-backed repositories, used by tests and
// local development without a running PostgreSQL.
package inmemdb

import (
	"sync"

	"github.com/campusconnect/backend/core/college"
	"github.com/campusconnect/backend/core/mentor"
	"github.com/campusconnect/backend/core/mission"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/scholarship"
	"github.com/campusconnect/backend/core/user"
)

type (
	DB struct {
		user        *userTable
		mission     *missionTable
		xpEvent     *xpEventTable
		college     *collegeTable
		mentor      *mentorTable
		scholarship *scholarshipTable
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	missionTable struct {
		mutex   sync.RWMutex
		table   map[int]*mission.Mission
		pkCount int
	}

	xpEventTable struct {
		mutex   sync.RWMutex
		table   map[int]*progress.Event
		pkCount int
	}

	collegeTable struct {
		mutex      sync.RWMutex
		table      map[int]*college.College
		views      map[int]*college.RecentlyViewed
		pkCount    int
		viewsCount int
	}

	mentorTable struct {
		mutex        sync.RWMutex
		table        map[int]*mentor.Mentor
		sessions     map[int]*mentor.Session
		pkCount      int
		sessionCount int
	}

	scholarshipTable struct {
		mutex   sync.RWMutex
		table   map[int]*scholarship.Scholarship
		pkCount int
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:        &userTable{table: make(map[string]*user.User)},
		mission:     &missionTable{table: make(map[int]*mission.Mission)},
		xpEvent:     &xpEventTable{table: make(map[int]*progress.Event)},
		college:     &collegeTable{table: make(map[int]*college.College), views: make(map[int]*college.RecentlyViewed)},
		mentor:      &mentorTable{table: make(map[int]*mentor.Mentor), sessions: make(map[int]*mentor.Session)},
		scholarship: &scholarshipTable{table: make(map[int]*scholarship.Scholarship)},
	}
	return db, nil
}
