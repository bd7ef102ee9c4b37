package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord holds one student's presence and optional grade for a
// single day. One row per student per date, upserted on re-entry.
type AttendanceRecord struct {
	ID         uuid.UUID  `json:"id"`
	StudentID  uuid.UUID  `json:"student_id"`
	Date       time.Time  `json:"date"`
	Present    bool       `json:"present"`
	Grade      *int       `json:"grade,omitempty"`
	RecordedBy *uuid.UUID `json:"recorded_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
