package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusconnect/backend/core"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminOwner = "admin:owner"

	// Mentor
	RoleMentor = "mentor:"

	// Student
	RoleStudent = "student:"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminOwner}
	MentorRoles  = []string{RoleMentor}
	StudentRoles = []string{RoleStudent}
	AllRoles     = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner: 30,
		RoleAdmin:      21,

		// Mentors: 20 - 11
		RoleMentor: 11,

		// Students: 10 - 1
		RoleStudent: 1,
	}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Mentor", Value: RoleMentor},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 4)
	all = append(all, AdminRoles...)
	all = append(all, MentorRoles...)
	all = append(all, StudentRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is a portal account. XP and Level are owned by the progress engine:
// nothing else writes them, and Level is always derived from XP there.
type User struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	Gender              string    `json:"gender,omitempty"`
	Age                 int       `json:"age,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	EducationBackground string    `json:"education_background,omitempty"`
	Percentage          float64   `json:"percentage,omitempty"`
	Stream              string    `json:"stream,omitempty"`
	PreferredStates     []string  `json:"preferred_states,omitempty"`
	XP                  int       `json:"xp"`
	Level               int       `json:"level"`
	IsActive            *bool     `json:"is_active"`
	Roles               []string  `json:"roles"`
	PasswordHash        []byte    `json:"-"`
	LastLogin           null.Time `json:"last_login"`
	CreatedAt           time.Time `json:"created_at"` // UTC
	UpdatedAt           time.Time `json:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) SetActive(active bool) { u.IsActive = &active }

func (u *User) Active() bool { return u.IsActive != nil && *u.IsActive }

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool   { return u.RoleStartsWith(RoleAdmin) }
func (u *User) IsMentor() bool  { return u.RoleStartsWith(RoleMentor) }
func (u *User) IsStudent() bool { return u.RoleStartsWith(RoleStudent) }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name                string   `json:"name" validate:"required"`
	Username            string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email               string   `json:"email" validate:"omitempty,email"`
	Password            string   `json:"password" validate:"required"`
	PasswordConfirm     string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Gender              string   `json:"gender"`
	Age                 int      `json:"age" validate:"omitempty,gte=10,lte=100"`
	Phone               string   `json:"phone"`
	EducationBackground string   `json:"education_background"`
	Percentage          float64  `json:"percentage" validate:"omitempty,gte=0,lte=100"`
	Stream              string   `json:"stream"`
	PreferredStates     []string `json:"preferred_states"`
	Roles               []string `json:"roles" validate:"omitempty,allroles"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
// XP and Level are deliberately absent; only the progress engine may touch them.
type UpdateUser struct {
	Name                string   `json:"name"`
	Username            string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email               string   `json:"email" validate:"omitempty,email"`
	Gender              string   `json:"gender"`
	Age                 int      `json:"age" validate:"omitempty,gte=10,lte=100"`
	Phone               string   `json:"phone"`
	EducationBackground string   `json:"education_background"`
	Percentage          float64  `json:"percentage" validate:"omitempty,gte=0,lte=100"`
	Stream              string   `json:"stream"`
	PreferredStates     []string `json:"preferred_states"`
	IsActive            *bool    `json:"is_active"`
	Roles               []string `json:"roles" validate:"omitempty,allroles"`
	Password            string   `json:"password" validate:"omitempty"`
	PasswordConfirm     string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate, origUsr User, svc *Service) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.checkUniqueness(uu.Username, uu.Email, origUsr)
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return validate.Struct(pr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []string  `query:"role"`
	Stream      string    `query:"stream"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.Stream == "" && qf.IsActive == nil &&
		qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Stream = core.CleanString(qf.Stream)
}

// LeaderboardEntry is a user's public standing, ordered by XP.
type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}
