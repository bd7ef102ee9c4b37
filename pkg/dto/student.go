package dto

import (
	"time"

	"github.com/google/uuid"
)

type StudentResponse struct {
	ID            uuid.UUID  `json:"id"`
	FullName      string     `json:"full_name"`
	ClassName     string     `json:"class_name"`
	GroupID       *uuid.UUID `json:"group_id,omitempty"`
	Subjects      []string   `json:"subjects"`
	Average       float64    `json:"average"`
	AttendancePct int        `json:"attendance_pct"`
	CreatedAt     time.Time  `json:"created_at"`
}

type CreateStudentRequest struct {
	FullName  string   `json:"full_name" validate:"required,min=2,max=128"`
	ClassName string   `json:"class_name" validate:"required,max=32"`
	GroupID   string   `json:"group_id,omitempty"`
	Subjects  []string `json:"subjects,omitempty"`
}

type UpdateStudentRequest struct {
	FullName  string   `json:"full_name" validate:"required,min=2,max=128"`
	ClassName string   `json:"class_name" validate:"required,max=32"`
	GroupID   string   `json:"group_id,omitempty"`
	Subjects  []string `json:"subjects,omitempty"`
}
