package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type GroupService struct {
	db *database.DB
}

func NewGroupService(db *database.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, description FROM groups ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *GroupService) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var g models.Group
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, description FROM groups WHERE id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}
