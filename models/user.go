package models

import "time"

// Admin is an account allowed to author forms and content.
// Sensitive fields must never be exposed outside trusted boundaries.
type Admin struct {
	// AdminID is the internal unique identifier of the admin.
	AdminID int64 `json:"-"`

	// Login is the unique admin login.
	Login string `json:"login"`

	// Password is the plain-text password received on login or register.
	// It is never persisted; only PasswordHash is.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of Password.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Admin model.
func (a Admin) TableName() string {
	return "admins"
}
