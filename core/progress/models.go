package progress

import "time"

// Fixed flat-rate awards for side activities.
const (
	XPCollegeViewed = 5
	XPSessionBooked = 15
)

// LevelWidth is the XP bucket size: each level spans 100 XP.
const LevelWidth = 100

// Reason tags an XP event with the activity that triggered it.
type Reason string

const (
	ReasonMissionCompleted   Reason = "mission_completed"
	ReasonMissionUncompleted Reason = "mission_uncompleted"
	ReasonCollegeViewed      Reason = "college_viewed"
	ReasonSessionBooked      Reason = "session_booked"
)

// Progress is the XP/level pair stored on a user's profile record.
// It is mutated exclusively through Engine.ApplyDelta.
type Progress struct {
	UserID string `json:"user_id"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
}

// Result is the outcome of applying an XP delta.
type Result struct {
	XP        int  `json:"xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

// Event is an append-only audit record of an applied XP delta.
// Delta is the requested change; Applied is the effective change after
// clamping at the zero floor.
type Event struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Delta     int       `json:"delta"`
	Applied   int       `json:"applied"`
	Reason    Reason    `json:"reason"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// LevelForXP derives the level tier from cumulative XP.
// Levels are fixed-width buckets of LevelWidth XP, starting at level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/LevelWidth + 1
}
