package services

import (
	"context"
	"testing"
	"time"

	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileCols = []string{"id", "email", "full_name", "password_hash", "role", "is_approved", "group_id", "created_at", "updated_at"}

var joinedProfileCols = append(append([]string{}, profileCols...), "g_id", "g_name", "g_description")

func setupProfileService(t *testing.T) (*ProfileService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewProfileService(db, false), mock
}

func strPtr(s string) *string { return &s }

func TestProfileService_Create(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(profileCols).
		AddRow(id, "new@example.com", strPtr("New User"), "hash", roles.Teacher, false, nil, now, now)
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs("new@example.com", strPtr("New User"), "hash").
		WillReturnRows(rows)

	p, err := svc.Create(ctx, "new@example.com", "hash", strPtr("New User"))

	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, roles.Teacher, p.Role)
	assert.False(t, p.IsApproved)
	assert.Nil(t, p.GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_Create_DuplicateEmail(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs("taken@example.com", strPtr("Someone"), "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(ctx, "taken@example.com", "hash", strPtr("Someone"))

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_GetByID_WithGroup(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	groupID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(joinedProfileCols).
		AddRow(id, "gc@example.com", strPtr("Group Coord"), "hash", roles.GroupCoordinator, true, &groupID, now, now,
			&groupID, strPtr("North Campus"), strPtr("desc"))
	mock.ExpectQuery(`SELECT .+ FROM profiles p`).
		WithArgs(id).
		WillReturnRows(rows)

	p, err := svc.GetByID(ctx, id)

	require.NoError(t, err)
	require.NotNil(t, p.Group)
	assert.Equal(t, "North Campus", p.Group.Name)
	assert.Equal(t, groupID, p.Group.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM profiles p`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, id)

	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_List(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	now := time.Now()
	groupID := uuid.New()

	rows := pgxmock.NewRows(joinedProfileCols).
		AddRow(uuid.New(), "newest@example.com", strPtr("Newest"), "hash", roles.Teacher, false, nil, now, now,
			nil, nil, nil).
		AddRow(uuid.New(), "oldest@example.com", strPtr("Oldest"), "hash", roles.Instructor, true, &groupID, now.Add(-time.Hour), now,
			&groupID, strPtr("South Campus"), nil)
	mock.ExpectQuery(`SELECT .+ FROM profiles p`).
		WillReturnRows(rows)

	profiles, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Nil(t, profiles[0].Group)
	require.NotNil(t, profiles[1].Group)
	assert.Equal(t, "South Campus", profiles[1].Group.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetApproval(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(profileCols).
		AddRow(id, "u@example.com", strPtr("User"), "hash", roles.Teacher, true, nil, now, now)
	mock.ExpectQuery(`UPDATE profiles SET is_approved`).
		WithArgs(true, id).
		WillReturnRows(rows)

	p, err := svc.SetApproval(ctx, id, true)

	require.NoError(t, err)
	assert.True(t, p.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetApproval_NotFound(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(`UPDATE profiles SET is_approved`).
		WithArgs(false, id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.SetApproval(ctx, id, false)

	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_GlobalRoleClearsGroup(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	groupID := uuid.New()
	now := time.Now()

	// A group was passed for a global role; the update must write NULL.
	rows := pgxmock.NewRows(profileCols).
		AddRow(id, "u@example.com", strPtr("User"), "hash", roles.Teacher, true, nil, now, now)
	mock.ExpectQuery(`UPDATE profiles SET role`).
		WithArgs(roles.Teacher, (*uuid.UUID)(nil), id).
		WillReturnRows(rows)

	p, err := svc.SetRole(ctx, id, roles.Teacher, &groupID)

	require.NoError(t, err)
	assert.Nil(t, p.GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_GroupScopedRole(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	groupID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(profileCols).
		AddRow(id, "u@example.com", strPtr("User"), "hash", roles.Instructor, true, &groupID, now, now)
	mock.ExpectQuery(`UPDATE profiles SET role`).
		WithArgs(roles.Instructor, &groupID, id).
		WillReturnRows(rows)

	p, err := svc.SetRole(ctx, id, roles.Instructor, &groupID)

	require.NoError(t, err)
	require.NotNil(t, p.GroupID)
	assert.Equal(t, groupID, *p.GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_GroupRequired(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()

	// No expectations registered: the invariant is checked before any SQL.
	_, err := svc.SetRole(ctx, uuid.New(), roles.Instructor, nil)

	assert.ErrorIs(t, err, ErrGroupRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_NilGroupID(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	nilID := uuid.Nil

	_, err := svc.SetRole(ctx, uuid.New(), roles.GroupCoordinator, &nilID)

	assert.ErrorIs(t, err, ErrGroupRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_UnknownRole(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()

	_, err := svc.SetRole(ctx, uuid.New(), "janitor", nil)

	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_LegacyMode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	svc := NewProfileService(&database.DB{Pool: mock}, true)
	ctx := context.Background()
	groupID := uuid.New()

	// Group-aware roles are not assignable when the legacy table is active.
	_, err = svc.SetRole(ctx, uuid.New(), roles.GroupCoordinator, &groupID)
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.SetRole(ctx, uuid.New(), roles.Instructor, &groupID)
	assert.ErrorIs(t, err, ErrUnknownRole)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_SetRole_GroupNotFound(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	groupID := uuid.New()

	mock.ExpectQuery(`UPDATE profiles SET role`).
		WithArgs(roles.GroupCoordinator, &groupID, id).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := svc.SetRole(ctx, id, roles.GroupCoordinator, &groupID)

	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_UpdateName(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(profileCols).
		AddRow(id, "u@example.com", strPtr("Renamed"), "hash", roles.Teacher, true, nil, now, now)
	mock.ExpectQuery(`UPDATE profiles SET full_name`).
		WithArgs("Renamed", id).
		WillReturnRows(rows)

	p, err := svc.UpdateName(ctx, id, "Renamed")

	require.NoError(t, err)
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Renamed", *p.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
