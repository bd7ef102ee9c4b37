package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/google/uuid"
)

var ErrExamNotFound = errors.New("exam not found")

type ExamService struct {
	db *database.DB
}

func NewExamService(db *database.DB) *ExamService {
	return &ExamService{db: db}
}

// ListByMonth returns the exam calendar for one month, ordered by date and
// start time.
func (s *ExamService) ListByMonth(ctx context.Context, year int, month time.Month) ([]models.Exam, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, subject, class_name, exam_date, start_time, duration_min, kind, teacher_name, description, created_at
		FROM exams
		WHERE exam_date >= $1 AND exam_date < $2
		ORDER BY exam_date, start_time
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Subject, &e.ClassName, &e.Date, &e.StartTime,
			&e.DurationMin, &e.Kind, &e.TeacherName, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (s *ExamService) Create(ctx context.Context, exam models.Exam) (*models.Exam, error) {
	if exam.Kind == "" {
		exam.Kind = models.ExamKindExam
	}
	if exam.DurationMin <= 0 {
		exam.DurationMin = 60
	}

	var e models.Exam
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO exams (title, subject, class_name, exam_date, start_time, duration_min, kind, teacher_name, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, subject, class_name, exam_date, start_time, duration_min, kind, teacher_name, description, created_at
	`, exam.Title, exam.Subject, exam.ClassName, exam.Date, exam.StartTime,
		exam.DurationMin, exam.Kind, exam.TeacherName, exam.Description).Scan(
		&e.ID, &e.Title, &e.Subject, &e.ClassName, &e.Date, &e.StartTime,
		&e.DurationMin, &e.Kind, &e.TeacherName, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}
	return &e, nil
}

func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExamNotFound
	}
	return nil
}
