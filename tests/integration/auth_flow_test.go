package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/avivgl/schoolhub-api/internal/config"
	"github.com/avivgl/schoolhub-api/internal/handlers"
	"github.com/avivgl/schoolhub-api/internal/hub"
	authmw "github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/dto"
	"github.com/avivgl/schoolhub-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowTimeout = 10 * time.Second

// buildApp wires the auth, session and admin routes against a real database,
// the same way main does.
func buildApp(tdb *testutil.TestDB) (http.Handler, *services.ProfileService) {
	jwtService := testutil.TestJWTService()
	profileService := services.NewProfileService(tdb.DB, false)
	tokenService := services.NewTokenService(tdb.DB)
	emailService := services.NewEmailService(config.SMTPConfig{})

	changeHub := hub.NewHub()
	go changeHub.Run()

	log := zerolog.Nop()

	authHandler := handlers.NewAuthHandler(profileService, tokenService, jwtService, log, flowTimeout)
	sessionHandler := handlers.NewSessionHandler(profileService, flowTimeout)
	adminHandler := handlers.NewAdminHandler(profileService, emailService, changeHub, log, flowTimeout)

	app := drift.New()
	app.Use(driftmw.BodyParser())

	app.Post("/auth/signup", authHandler.SignUp)
	app.Post("/auth/signin", authHandler.SignIn)
	app.Post("/auth/refresh", authHandler.RefreshToken)

	authed := app.Group("")
	authed.Use(authmw.Auth(jwtService))
	authed.Get("/session", sessionHandler.Get)

	admin := app.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.Approved(profileService))
	admin.Use(authmw.RequireCapability(roles.CapManageUsers))
	admin.Patch("/users/:id/approval", adminHandler.SetApproval)
	admin.Patch("/users/:id/role", adminHandler.SetRole)

	return app, profileService
}

func TestApprovalFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	app, profileService := buildApp(tdb)
	client := testutil.NewHTTPTestClient(t, app)
	ctx := context.Background()

	// A new teacher signs up and gets a token pair straight away.
	rec := client.POST("/auth/signup", dto.SignUpRequest{
		Email:    "newteacher@example.com",
		Password: "a-long-enough-password",
		FullName: "New Teacher",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens dto.TokenResponse
	testutil.ParseJSON(t, rec, &tokens)
	headers := map[string]string{"Authorization": testutil.AuthHeader(tokens.AccessToken)}

	// The session resolves to the pending screen until an admin approves.
	rec = client.GET("/session", headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var session dto.SessionResponse
	testutil.ParseJSON(t, rec, &session)
	assert.Equal(t, "pending", session.Screen)
	assert.Empty(t, session.Sections)
	require.NotNil(t, session.Profile)
	assert.Equal(t, roles.Teacher, session.Profile.Role)

	// Bootstrap an approved admin directly in the database.
	fixtures := testutil.NewFixtures(tdb.DB)
	adminProfile := fixtures.CreateProfile(t,
		testutil.WithEmail("admin@example.com"),
		testutil.WithRole(roles.Admin),
		testutil.WithApproved(),
	)
	adminHeaders := map[string]string{
		"Authorization": testutil.AuthHeader(
			testutil.GenerateTestToken(t, adminProfile.ID, adminProfile.Email, roles.Admin)),
	}

	// The pending teacher cannot reach the admin surface.
	approved := true
	rec = client.PATCH("/admin/users/"+session.Profile.ID.String()+"/approval",
		dto.SetApprovalRequest{Approved: &approved}, headers)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The admin approves them.
	rec = client.PATCH("/admin/users/"+session.Profile.ID.String()+"/approval",
		dto.SetApprovalRequest{Approved: &approved}, adminHeaders)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The very next session read flips to the dashboard with teacher sections.
	rec = client.GET("/session", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	testutil.ParseJSON(t, rec, &session)
	assert.Equal(t, "dashboard", session.Screen)

	ids := make([]string, 0, len(session.Sections))
	for _, s := range session.Sections {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "schedule")
	assert.Contains(t, ids, "exams")
	assert.NotContains(t, ids, "users")

	// Promotion to a group-scoped role enforces the group invariant end to end.
	rec = client.PATCH("/admin/users/"+session.Profile.ID.String()+"/role",
		dto.SetRoleRequest{Role: roles.Instructor}, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	group := fixtures.FirstGroup(t)
	rec = client.PATCH("/admin/users/"+session.Profile.ID.String()+"/role",
		dto.SetRoleRequest{Role: roles.Instructor, GroupID: group.ID.String()}, adminHeaders)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated, err := profileService.GetByID(ctx, session.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.Instructor, updated.Role)
	require.NotNil(t, updated.Group)
	assert.Equal(t, group.Name, updated.Group.Name)
}

func TestRefreshFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	app, profileService := buildApp(tdb)
	client := testutil.NewHTTPTestClient(t, app)
	ctx := context.Background()

	rec := client.POST("/auth/signup", dto.SignUpRequest{
		Email:    "rotate@example.com",
		Password: "a-long-enough-password",
		FullName: "Rotating User",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens dto.TokenResponse
	testutil.ParseJSON(t, rec, &tokens)

	// Promote behind the session's back; the next refresh must pick it up.
	profile, err := profileService.GetByEmail(ctx, "rotate@example.com")
	require.NoError(t, err)
	_, err = profileService.SetRole(ctx, profile.ID, roles.Coordinator, nil)
	require.NoError(t, err)

	rec = client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rotated dto.TokenResponse
	testutil.ParseJSON(t, rec, &rotated)

	claims, err := testutil.TestJWTService().ValidateAccessToken(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, roles.Coordinator, claims.Role)

	// The old refresh token was revoked by the rotation.
	rec = client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
