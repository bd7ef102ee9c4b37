package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExamKindExam       = "exam"
	ExamKindAssignment = "assignment"
)

type Exam struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	ClassName   string    `json:"class_name"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	DurationMin int       `json:"duration_min"`
	Kind        string    `json:"kind"`
	TeacherName string    `json:"teacher_name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
