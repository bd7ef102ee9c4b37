package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID            uuid.UUID  `json:"id"`
	FullName      string     `json:"full_name"`
	ClassName     string     `json:"class_name"`
	GroupID       *uuid.UUID `json:"group_id,omitempty"`
	Subjects      []string   `json:"subjects"`
	Average       float64    `json:"average"`
	AttendancePct int        `json:"attendance_pct"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
