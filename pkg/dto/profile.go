package dto

import (
	"time"

	"github.com/google/uuid"
)

type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

type ProfileResponse struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	FullName   *string        `json:"full_name,omitempty"`
	Role       string         `json:"role"`
	RoleLabel  string         `json:"role_label"`
	IsApproved bool           `json:"is_approved"`
	Group      *GroupResponse `json:"group,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SessionResponse is the role-gated entry point for a client: which screen to
// render, the sections visible to this role, and the profile itself. Profile
// is null while the account has no profile row yet.
type SessionResponse struct {
	Screen       string           `json:"screen"`
	Sections     []SectionInfo    `json:"sections"`
	Capabilities map[string]bool  `json:"capabilities"`
	Profile      *ProfileResponse `json:"profile"`
}

type SectionInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type UpdateNameRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=128"`
}

type SetApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type SetRoleRequest struct {
	Role    string `json:"role" validate:"required"`
	GroupID string `json:"group_id,omitempty"`
}
