package mentor

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// Session statuses.
const (
	SessionConfirmed = "confirmed"
	SessionCancelled = "cancelled"
)

type Mentor struct {
	ID                int         `json:"id"`
	Name              string      `json:"name"`
	College           string      `json:"college"`
	Specialization    string      `json:"specialization"`
	Bio               string      `json:"bio"`
	ProfileImage      null.String `json:"profile_image"`
	Rating            float64     `json:"rating"`
	SessionsCompleted int         `json:"sessions_completed"`
}

type Session struct {
	ID            int       `json:"id"`
	UserID        string    `json:"user_id"`
	MentorID      int       `json:"mentor_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	Mentor        Mentor    `json:"mentor"`
}

func (s Session) Cancelled() bool { return s.Status == SessionCancelled }

// NewSession contains information needed to book a mentor session.
type NewSession struct {
	MentorID      int       `json:"mentor_id" validate:"required"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
}

func (ns NewSession) Validate(validate *validator.Validate) error {
	return validate.Struct(ns)
}
