package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-level record behind an authenticated identity.
// New profiles start out unapproved; an administrator flips is_approved and
// assigns the final role.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     *string    `json:"full_name,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsApproved   bool       `json:"is_approved"`
	GroupID      *uuid.UUID `json:"group_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Group is populated when the profile is fetched with its group joined.
	Group *Group `json:"group,omitempty"`
}

// Group is a named cohort scoping visibility for group-bound roles.
// Read-only reference data; there is no create or update path.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}
