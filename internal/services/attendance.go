package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type AttendanceService struct {
	db *database.DB
}

func NewAttendanceService(db *database.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// ListByDate returns the attendance sheet for one day, optionally narrowed
// to a class or a single group's students.
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time, className string, groupID *uuid.UUID) ([]models.AttendanceRecord, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT a.id, a.student_id, a.record_date, a.present, a.grade, a.recorded_by, a.created_at, a.updated_at
		FROM attendance_records a
		JOIN students st ON st.id = a.student_id
		WHERE a.record_date = $1
		  AND ($2 = '' OR st.class_name = $2)
		  AND ($3::uuid IS NULL OR st.group_id = $3)
		ORDER BY st.class_name, st.full_name
	`, date, className, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(
			&r.ID, &r.StudentID, &r.Date, &r.Present, &r.Grade,
			&r.RecordedBy, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Upsert records one student's presence and optional grade for a date.
// Re-entering the same student/date replaces the previous row.
func (s *AttendanceService) Upsert(ctx context.Context, studentID uuid.UUID, date time.Time, present bool, grade *int, recordedBy uuid.UUID) (*models.AttendanceRecord, error) {
	var r models.AttendanceRecord
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO attendance_records (student_id, record_date, present, grade, recorded_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, record_date)
		DO UPDATE SET present = EXCLUDED.present, grade = EXCLUDED.grade, recorded_by = EXCLUDED.recorded_by, updated_at = NOW()
		RETURNING id, student_id, record_date, present, grade, recorded_by, created_at, updated_at
	`, studentID, date, present, grade, recordedBy).Scan(
		&r.ID, &r.StudentID, &r.Date, &r.Present, &r.Grade,
		&r.RecordedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}
	return &r, nil
}
