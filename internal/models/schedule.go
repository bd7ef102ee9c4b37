package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one lesson in the weekly timetable. Days run Sunday (0)
// through Friday (5), slots are 1-based lesson periods.
type ScheduleEntry struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   int       `json:"day_of_week"`
	Slot        int       `json:"slot"`
	Subject     string    `json:"subject"`
	ClassName   string    `json:"class_name"`
	TeacherName string    `json:"teacher_name"`
	Room        *string   `json:"room,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
