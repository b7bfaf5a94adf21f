package model

import "time"

// BaseModel is our base class for a GORM model.
// The default GORM Model uses int, but we prefer int64
type BaseModel struct {
	ID int64 `gorm:"primaryKey" json:"id"`
}

// Role is the closed set of account roles. Every user has exactly one role,
// assigned at creation and changed only by an admin.
type Role string

const (
	RoleReporter   Role = "reporter"
	RoleMaintainer Role = "maintainer"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleReporter, RoleMaintainer, RoleAdmin:
		return true
	}
	return false
}

// SYNC-RECORD-USER
type User struct {
	BaseModel
	Username string    `json:"username" gorm:"uniqueIndex"`
	Password string    `json:"-"` // bcrypt hash. Never leaves the auth package in plaintext-comparable form.
	Role     Role      `json:"role"`
	Email    string    `json:"email" gorm:"default:null"`
	Phone    string    `json:"phone" gorm:"default:null"`
	JoinedAt time.Time `json:"joined_at"`
}

func (User) TableName() string {
	return "users"
}

// Session is a server-side login session. Key is the SHA-256 of the cookie
// token, so a leaked table never yields a usable credential.
type Session struct {
	Key       string `gorm:"primaryKey"`
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (Session) TableName() string {
	return "session"
}

// Issue states. An issue starts out pending, and a maintainer moves it to
// resolved (or back) via PATCH /issues/:id.
const (
	IssueStatusPending  = "pending"
	IssueStatusResolved = "resolved"
)

// SYNC-RECORD-ISSUE
type Issue struct {
	BaseModel
	UserID      int64     `json:"user_id"` // reporter who filed the issue
	Floor       string    `json:"floor"`
	Room        string    `json:"room"`
	Device      string    `json:"device"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Remark      string    `json:"remark" gorm:"default:null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Issue) TableName() string {
	return "issues"
}

type ContactMessage struct {
	BaseModel
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact"
}
