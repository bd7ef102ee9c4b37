package dto

import (
	"time"

	"github.com/google/uuid"
)

type ExamResponse struct {
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
}

type CreateExamRequest struct {
	Title       string  `json:"title" validate:"required,max=128"`
	Subject     string  `json:"subject" validate:"required,max=64"`
	ClassName   string  `json:"class_name" validate:"required,max=32"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	DurationMin int     `json:"duration_min" validate:"omitempty,min=10,max=300"`
	Kind        string  `json:"kind" validate:"omitempty,oneof=exam assignment"`
	TeacherName string  `json:"teacher_name" validate:"required,max=128"`
	Description *string `json:"description,omitempty"`
}
