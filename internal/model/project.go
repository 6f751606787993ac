package model

import "time"

// Project represents a user-owned project record.
// Metadata is an arbitrary JSON document stored alongside the row.
type Project struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	OwnerID     string         `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// EditableBy reports whether the given user may mutate or delete the project.
// The owner always may; admins may regardless of ownership.
func (p *Project) EditableBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.ID == p.OwnerID || u.IsAdmin()
}
