package integration

import (
	"context"
	"testing"

	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Integration_SignUpDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB, false)
	ctx := context.Background()

	fullName := "Fresh Signup"
	profile, err := svc.Create(ctx, "fresh@example.com", "hash", &fullName)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, profile.ID)
	assert.Equal(t, roles.Teacher, profile.Role)
	assert.False(t, profile.IsApproved)
	assert.Nil(t, profile.GroupID)
}

func TestProfileService_Integration_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB, false)
	ctx := context.Background()

	_, err := svc.Create(ctx, "dup@example.com", "hash", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "dup@example.com", "other-hash", nil)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestProfileService_Integration_ApprovalLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB, false)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	profile := fixtures.CreateProfile(t)
	assert.Equal(t, roles.ScreenPending,
		roles.ScreenFor(true, true, profile.IsApproved, profile.Role))

	approved, err := svc.SetApproval(ctx, profile.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, roles.ScreenDashboard,
		roles.ScreenFor(true, true, approved.IsApproved, approved.Role))

	// Revoking puts the account back behind the gate.
	revoked, err := svc.SetApproval(ctx, profile.ID, false)
	require.NoError(t, err)
	assert.False(t, revoked.IsApproved)
	assert.Equal(t, roles.ScreenPending,
		roles.ScreenFor(true, true, revoked.IsApproved, revoked.Role))
}

func TestProfileService_Integration_SetRoleGroupInvariant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB, false)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	profile := fixtures.CreateProfile(t, testutil.WithApproved())
	group := fixtures.FirstGroup(t)

	// Group-scoped role without a group is rejected before touching the row.
	_, err := svc.SetRole(ctx, profile.ID, roles.Instructor, nil)
	assert.ErrorIs(t, err, services.ErrGroupRequired)

	updated, err := svc.SetRole(ctx, profile.ID, roles.Instructor, &group.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.Instructor, updated.Role)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, group.ID, *updated.GroupID)

	// Moving to a global role clears the group even if one is passed.
	updated, err = svc.SetRole(ctx, profile.ID, roles.Coordinator, &group.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.Coordinator, updated.Role)
	assert.Nil(t, updated.GroupID)
}

func TestProfileService_Integration_SetRoleUnknownGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB, false)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	profile := fixtures.CreateProfile(t, testutil.WithApproved())
	bogus := uuid.New()

	_, err := svc.SetRole(ctx, profile.ID, roles.GroupCoordinator, &bogus)
	assert.ErrorIs(t, err, services.ErrGroupNotFound)
}

func TestProfileService_Integration_ListJoinsGroups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB, false)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	group := fixtures.FirstGroup(t)
	fixtures.CreateProfile(t, testutil.WithRole(roles.Instructor), testutil.WithGroup(group.ID))
	fixtures.CreateProfile(t)

	profiles, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	var joined bool
	for _, p := range profiles {
		if p.Group != nil {
			joined = true
			assert.Equal(t, group.Name, p.Group.Name)
		}
	}
	assert.True(t, joined)
}
