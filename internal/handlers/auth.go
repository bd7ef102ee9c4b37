package handlers

import (
	"errors"
	"time"

	"github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	profileService ProfileServiceInterface
	tokenService   TokenServiceInterface
	jwtService     JWTServiceInterface
	logger         zerolog.Logger
	timeout        time.Duration
}

func NewAuthHandler(
	profileService ProfileServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	logger zerolog.Logger,
	timeout time.Duration,
) *AuthHandler {
	return &AuthHandler{
		profileService: profileService,
		tokenService:   tokenService,
		jwtService:     jwtService,
		logger:         logger,
		timeout:        timeout,
	}
}

// SignUp registers a new account. New accounts start unapproved with the
// default role and cannot reach feature routes until an admin approves them.
func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.InternalServerError("failed to hash password")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	profile, err := h.profileService.Create(ctx, req.Email, string(hash), &req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(409, map[string]string{"error": "email already registered"})
			return
		}
		if timedOut(c, err) {
			return
		}
		h.logger.Error().Err(err).Msg("signup failed")
		c.InternalServerError("failed to create account")
		return
	}

	pair, err := h.issueTokens(c, profile.ID, profile.Email, profile.Role)
	if err != nil {
		return
	}

	h.logger.Info().Str("email", profile.Email).Msg("account created, pending approval")
	_ = c.JSON(201, pair)
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	profile, err := h.profileService.GetByEmail(ctx, req.Email)
	if err != nil {
		if timedOut(c, err) {
			return
		}
		// Same response as a wrong password so emails cannot be probed.
		c.Unauthorized("invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		c.Unauthorized("invalid credentials")
		return
	}

	pair, err := h.issueTokens(c, profile.ID, profile.Email, profile.Role)
	if err != nil {
		return
	}

	_ = c.JSON(200, pair)
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	// Role can change between refreshes, so the new access token is minted
	// from the current profile row, not the old claims.
	profile, err := h.profileService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("account not found")
		return
	}

	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		c.InternalServerError("failed to revoke old token")
		return
	}

	pair, err := h.issueTokens(c, profile.ID, profile.Email, profile.Role)
	if err != nil {
		return
	}

	_ = c.JSON(200, pair)
}

// SignOut revokes the presented refresh token. Always answers 200 so a
// client can clear local state even with a stale token.
func (h *AuthHandler) SignOut(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		ctx, cancel := requestContext(h.timeout)
		defer cancel()
		_ = h.tokenService.RevokeRefreshToken(ctx, services.HashToken(req.RefreshToken))
	}

	_ = c.JSON(200, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) SignOutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	if err := h.tokenService.RevokeAllUserTokens(ctx, userID); err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions signed out"})
}

// issueTokens mints a pair and stores the refresh token hash. On failure it
// writes the error response and returns a non-nil error.
func (h *AuthHandler) issueTokens(c *drift.Context, userID uuid.UUID, email, role string) (*dto.TokenResponse, error) {
	pair, err := h.jwtService.GenerateTokenPair(userID, email, role)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return nil, err
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	tokenHash := services.HashToken(pair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, userID, tokenHash, expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
