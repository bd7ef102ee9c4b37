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

var (
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrScheduleSlotTaken     = errors.New("slot already taken for this class")
)

type ScheduleService struct {
	db *database.DB
}

func NewScheduleService(db *database.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// List returns the timetable, optionally for a single class, ordered by day
// then slot.
func (s *ScheduleService) List(ctx context.Context, className string) ([]models.ScheduleEntry, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, day_of_week, slot, subject, class_name, teacher_name, room, created_at, updated_at
		FROM schedule_entries
		WHERE ($1 = '' OR class_name = $1)
		ORDER BY day_of_week, slot, class_name
	`, className)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(
			&e.ID, &e.DayOfWeek, &e.Slot, &e.Subject, &e.ClassName,
			&e.TeacherName, &e.Room, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *ScheduleService) Create(ctx context.Context, entry models.ScheduleEntry) (*models.ScheduleEntry, error) {
	var e models.ScheduleEntry
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO schedule_entries (day_of_week, slot, subject, class_name, teacher_name, room)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, day_of_week, slot, subject, class_name, teacher_name, room, created_at, updated_at
	`, entry.DayOfWeek, entry.Slot, entry.Subject, entry.ClassName, entry.TeacherName, entry.Room).Scan(
		&e.ID, &e.DayOfWeek, &e.Slot, &e.Subject, &e.ClassName,
		&e.TeacherName, &e.Room, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrScheduleSlotTaken
		}
		return nil, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return &e, nil
}

func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, entry models.ScheduleEntry) (*models.ScheduleEntry, error) {
	var e models.ScheduleEntry
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE schedule_entries
		SET day_of_week = $1, slot = $2, subject = $3, class_name = $4, teacher_name = $5, room = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, day_of_week, slot, subject, class_name, teacher_name, room, created_at, updated_at
	`, entry.DayOfWeek, entry.Slot, entry.Subject, entry.ClassName, entry.TeacherName, entry.Room, id).Scan(
		&e.ID, &e.DayOfWeek, &e.Slot, &e.Subject, &e.ClassName,
		&e.TeacherName, &e.Room, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleEntryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrScheduleSlotTaken
		}
		return nil, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return &e, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleEntryNotFound
	}
	return nil
}
