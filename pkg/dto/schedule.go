package dto

import "github.com/google/uuid"

type ScheduleEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   int       `json:"day_of_week"`
	Slot        int       `json:"slot"`
	Subject     string    `json:"subject"`
	ClassName   string    `json:"class_name"`
	TeacherName string    `json:"teacher_name"`
	Room        *string   `json:"room,omitempty"`
}

type ScheduleEntryRequest struct {
	DayOfWeek   int     `json:"day_of_week" validate:"min=0,max=6"`
	Slot        int     `json:"slot" validate:"min=1,max=12"`
	Subject     string  `json:"subject" validate:"required,max=64"`
	ClassName   string  `json:"class_name" validate:"required,max=32"`
	TeacherName string  `json:"teacher_name" validate:"required,max=128"`
	Room        *string `json:"room,omitempty"`
}
