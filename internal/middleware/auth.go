package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	ProfileKey   = "profile"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// ProfileFetcher loads the current state of a profile.
type ProfileFetcher interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Approved gates a route on the approval flag. The flag is read from the
// database on every request rather than trusted from the token, so a revoked
// approval takes effect without waiting for token expiry. The fetched profile
// is stored in the context for handlers via GetProfile.
func Approved(profileService ProfileFetcher) drift.HandlerFunc {
	return func(c *drift.Context) {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			c.Unauthorized("missing authentication")
			return
		}

		profile, err := profileService.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrProfileNotFound) {
				c.Forbidden("account pending approval")
				return
			}
			c.InternalServerError("failed to load profile")
			return
		}

		if !profile.IsApproved {
			c.Forbidden("account pending approval")
			return
		}

		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// RequireCapability rejects requests whose profile's role lacks the given
// capability. Must run after Approved.
func RequireCapability(capability roles.Capability) drift.HandlerFunc {
	return func(c *drift.Context) {
		profile := GetProfile(c)
		if profile == nil {
			c.Unauthorized("missing authentication")
			return
		}

		if !roles.Capabilities(profile.Role).Has(capability) {
			c.Forbidden("insufficient permissions")
			return
		}

		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetUserRole(c *drift.Context) string {
	if role, ok := c.Get(UserRoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetProfile returns the profile stored by Approved, or nil when the request
// did not pass through it.
func GetProfile(c *drift.Context) *models.Profile {
	if p, ok := c.Get(ProfileKey); ok {
		if profile, ok := p.(*models.Profile); ok {
			return profile
		}
	}
	return nil
}
