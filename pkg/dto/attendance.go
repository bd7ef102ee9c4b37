package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Date      time.Time `json:"date"`
	Present   bool      `json:"present"`
	Grade     *int      `json:"grade,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RecordAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Present   *bool  `json:"present" validate:"required"`
	Grade     *int   `json:"grade" validate:"omitempty,min=1,max=10"`
}
