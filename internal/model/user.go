// Package model defines domain entities for the application.
package model

import "time"

// Role is a coarse permission tier attached to a user and embedded in tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is one of the known tiers.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered account.
// PasswordHash is never serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
