package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentService struct {
	db *database.DB
}

func NewStudentService(db *database.DB) *StudentService {
	return &StudentService{db: db}
}

// List returns the roster, optionally restricted to one group (for roles
// without the view-all-groups capability) and filtered by a name/class
// search term.
func (s *StudentService) List(ctx context.Context, groupID *uuid.UUID, search string) ([]models.Student, error) {
	query := `
		SELECT id, full_name, class_name, group_id, subjects, average, attendance_pct, created_at, updated_at
		FROM students
		WHERE ($1::uuid IS NULL OR group_id = $1)
		  AND ($2 = '' OR full_name ILIKE '%' || $2 || '%' OR class_name ILIKE '%' || $2 || '%')
		ORDER BY class_name, full_name
	`
	rows, err := s.db.Pool.Query(ctx, query, groupID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(
			&st.ID, &st.FullName, &st.ClassName, &st.GroupID, &st.Subjects,
			&st.Average, &st.AttendancePct, &st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var st models.Student
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, full_name, class_name, group_id, subjects, average, attendance_pct, created_at, updated_at
		FROM students WHERE id = $1
	`, id).Scan(
		&st.ID, &st.FullName, &st.ClassName, &st.GroupID, &st.Subjects,
		&st.Average, &st.AttendancePct, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &st, nil
}

func (s *StudentService) Create(ctx context.Context, fullName, className string, groupID *uuid.UUID, subjects []string) (*models.Student, error) {
	if subjects == nil {
		subjects = []string{}
	}
	var st models.Student
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO students (full_name, class_name, group_id, subjects)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, class_name, group_id, subjects, average, attendance_pct, created_at, updated_at
	`, fullName, className, groupID, subjects).Scan(
		&st.ID, &st.FullName, &st.ClassName, &st.GroupID, &st.Subjects,
		&st.Average, &st.AttendancePct, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return &st, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, fullName, className string, groupID *uuid.UUID, subjects []string) (*models.Student, error) {
	if subjects == nil {
		subjects = []string{}
	}
	var st models.Student
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE students
		SET full_name = $1, class_name = $2, group_id = $3, subjects = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, full_name, class_name, group_id, subjects, average, attendance_pct, created_at, updated_at
	`, fullName, className, groupID, subjects, id).Scan(
		&st.ID, &st.FullName, &st.ClassName, &st.GroupID, &st.Subjects,
		&st.Average, &st.AttendancePct, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return &st, nil
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}
