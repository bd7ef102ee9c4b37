package handlers

import (
	"errors"
	"time"

	"github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	profileService ProfileServiceInterface
	emailService   EmailServiceInterface
	hub            HubInterface
	logger         zerolog.Logger
	timeout        time.Duration
}

func NewAdminHandler(
	profileService ProfileServiceInterface,
	emailService EmailServiceInterface,
	h HubInterface,
	logger zerolog.Logger,
	timeout time.Duration,
) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		emailService:   emailService,
		hub:            h,
		logger:         logger,
		timeout:        timeout,
	}
}

// ListUsers returns all profiles, newest first, with the group label joined.
func (h *AdminHandler) ListUsers(c *drift.Context) {
	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	profiles, err := h.profileService.List(ctx)
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to list users")
		return
	}

	resp := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, toProfileResponse(&profiles[i]))
	}

	_ = c.JSON(200, resp)
}

// SetApproval flips exactly one profile's approval flag. The change is
// announced on the profiles change feed and, when approving, by email.
func (h *AdminHandler) SetApproval(c *drift.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.SetApprovalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Approved == nil {
		c.BadRequest("approved is required")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	profile, err := h.profileService.SetApproval(ctx, targetID, *req.Approved)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.NotFound("user not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to update approval")
		return
	}

	adminID := middleware.GetUserID(c)
	h.hub.BroadcastProfileChange("update", profile.ID, adminID)
	h.hub.BroadcastToUser(profile.ID, "profile_updated", nil)

	if *req.Approved && h.emailService.IsConfigured() {
		// Best effort; the approval itself already committed.
		if err := h.emailService.SendApprovalNotice(profile.Email, roles.Label(profile.Role)); err != nil {
			h.logger.Warn().Err(err).Str("email", profile.Email).Msg("failed to send approval notice")
		}
	}

	h.logger.Info().
		Str("user_id", profile.ID.String()).
		Bool("approved", *req.Approved).
		Str("admin_id", adminID.String()).
		Msg("approval changed")

	_ = c.JSON(200, toProfileResponse(profile))
}

// SetRole reassigns a profile's role and optional group. Group-scoped roles
// require a group; global roles have any group reference cleared.
func (h *AdminHandler) SetRole(c *drift.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.SetRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	var groupID *uuid.UUID
	if req.GroupID != "" {
		id, err := uuid.Parse(req.GroupID)
		if err != nil {
			c.BadRequest("invalid group id")
			return
		}
		groupID = &id
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	profile, err := h.profileService.SetRole(ctx, targetID, req.Role, groupID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownRole):
			c.BadRequest("unknown role: " + req.Role)
		case errors.Is(err, services.ErrGroupRequired):
			c.BadRequest("role " + req.Role + " requires a group")
		case errors.Is(err, services.ErrGroupNotFound):
			c.BadRequest("group not found")
		case errors.Is(err, services.ErrProfileNotFound):
			c.NotFound("user not found")
		default:
			if timedOut(c, err) {
				return
			}
			c.InternalServerError("failed to update role")
		}
		return
	}

	adminID := middleware.GetUserID(c)
	h.hub.BroadcastProfileChange("update", profile.ID, adminID)
	h.hub.BroadcastToUser(profile.ID, "profile_updated", nil)

	h.logger.Info().
		Str("user_id", profile.ID.String()).
		Str("role", profile.Role).
		Str("admin_id", adminID.String()).
		Msg("role changed")

	_ = c.JSON(200, toProfileResponse(profile))
}
