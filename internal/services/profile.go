package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUnknownRole     = errors.New("unknown role")
	ErrGroupRequired   = errors.New("role requires a group assignment")
	ErrGroupNotFound   = errors.New("group not found")
)

const profileColumns = `p.id, p.email, p.full_name, p.password_hash, p.role, p.is_approved, p.group_id, p.created_at, p.updated_at,
		g.id, g.name, g.description`

type ProfileService struct {
	db          *database.DB
	legacyRoles bool
}

func NewProfileService(db *database.DB, legacyRoles bool) *ProfileService {
	return &ProfileService{db: db, legacyRoles: legacyRoles}
}

// Create inserts the profile row for a fresh sign-up. New accounts always
// start as unapproved teachers; the final role is assigned by an
// administrator after approval.
func (s *ProfileService) Create(ctx context.Context, email, passwordHash string, fullName *string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, password_hash, role, is_approved, group_id, created_at, updated_at
	`, email, fullName, passwordHash).Scan(
		&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role,
		&p.IsApproved, &p.GroupID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &p, nil
}

// GetByID fetches a profile with its optional group joined in one round trip.
func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.id = $1
	`, id)
	return scanProfile(row)
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.email = $1
	`, email)
	return scanProfile(row)
}

// List returns every profile, newest first, with group labels joined.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		LEFT JOIN groups g ON g.id = p.group_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// SetApproval flips exactly one profile's approval flag.
func (s *ProfileService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Profile, error) {
	var p models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET is_approved = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, full_name, password_hash, role, is_approved, group_id, created_at, updated_at
	`, approved, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role,
		&p.IsApproved, &p.GroupID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}
	return &p, nil
}

// SetRole changes a profile's role, enforcing the group invariant before any
// query is issued: group-scoped roles must carry a group id, every other role
// has its group cleared regardless of what was passed.
func (s *ProfileService) SetRole(ctx context.Context, id uuid.UUID, role string, groupID *uuid.UUID) (*models.Profile, error) {
	if !roles.Valid(role, s.legacyRoles) {
		return nil, ErrUnknownRole
	}
	if roles.RequiresGroup(role) {
		if groupID == nil || *groupID == uuid.Nil {
			return nil, ErrGroupRequired
		}
	} else {
		groupID = nil
	}

	var p models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET role = $1, group_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, email, full_name, password_hash, role, is_approved, group_id, created_at, updated_at
	`, role, groupID, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role,
		&p.IsApproved, &p.GroupID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &p, nil
}

// UpdateName lets a user change their own display name.
func (s *ProfileService) UpdateName(ctx context.Context, id uuid.UUID, fullName string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET full_name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, full_name, password_hash, role, is_approved, group_id, created_at, updated_at
	`, fullName, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role,
		&p.IsApproved, &p.GroupID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update name: %w", err)
	}
	return &p, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var groupID *uuid.UUID
	var groupName, groupDescription *string

	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role,
		&p.IsApproved, &p.GroupID, &p.CreatedAt, &p.UpdatedAt,
		&groupID, &groupName, &groupDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	if groupID != nil && groupName != nil {
		p.Group = &models.Group{ID: *groupID, Name: *groupName, Description: groupDescription}
	}
	return &p, nil
}
