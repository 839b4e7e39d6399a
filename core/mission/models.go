package mission

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Mission statuses. A mission only ever moves between these two;
// completed --toggle(false)--> pending is a legal, fully reversible transition.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const TypeWeekly = "weekly"

// Mission is a user-assigned task carrying a fixed XP reward.
// XPReward is frozen at creation; toggling always awards/revokes exactly
// this amount so a complete/uncomplete pair is a symmetric undo.
type Mission struct {
	ID          int       `json:"id"`
	UserID      string    `json:"user_id"`
	Text        string    `json:"mission_text"`
	Type        string    `json:"mission_type"`
	XPReward    int       `json:"xp_reward"`
	Status      string    `json:"status"`
	CompletedOn null.Time `json:"completed_on"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Completed reports whether the mission is in the completed state.
// Invariant: Status == StatusCompleted iff CompletedOn is set.
func (m Mission) Completed() bool {
	return m.Status == StatusCompleted
}

// Template describes a default mission copied to a user's account the
// first time they are seen with none.
type Template struct {
	Text     string
	Type     string
	XPReward int
}

// DefaultMissions is the weekly template set seeded for new users.
var DefaultMissions = []Template{
	{Text: "Explore 3 colleges", Type: TypeWeekly, XPReward: 15},
	{Text: "Book a mentor session", Type: TypeWeekly, XPReward: 20},
	{Text: "Watch 2 career videos", Type: TypeWeekly, XPReward: 10},
	{Text: "Ask the Career Coach 3 questions", Type: TypeWeekly, XPReward: 15},
}
