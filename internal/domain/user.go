package domain

import (
	"strings"
	"time"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleUser    Role = "user"
)

// ParseRole maps a stored role to a known Role. Anything unknown or empty
// becomes RoleUser, the default for new accounts.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleTrainer:
		return r
	default:
		return RoleUser
	}
}

// User represents an account on the site (member, trainer or administrator).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"` // Should be unique
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose this via JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Helper methods
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}
