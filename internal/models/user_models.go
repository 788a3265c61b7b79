package models

import "time"

// User roles. The schema restricts the role column to these two values.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User represents an account that can sign in to the shop backend.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
