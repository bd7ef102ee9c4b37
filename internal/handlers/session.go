package handlers

import (
	"errors"
	"time"

	"github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SessionHandler struct {
	profileService ProfileServiceInterface
	timeout        time.Duration
}

func NewSessionHandler(profileService ProfileServiceInterface, timeout time.Duration) *SessionHandler {
	return &SessionHandler{profileService: profileService, timeout: timeout}
}

// Get resolves the caller's session into a screen decision: which screen the
// client should render, the sections visible to the role, and the profile.
// A valid token with an unapproved profile resolves to the pending screen; a
// valid token whose profile row is missing resolves back to the auth screen.
// Neither is an error.
func (h *SessionHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	profile, err := h.profileService.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			screen := roles.ScreenFor(true, false, false, "")
			_ = c.JSON(200, dto.SessionResponse{
				Screen:       string(screen),
				Sections:     []dto.SectionInfo{},
				Capabilities: capabilityMap(roles.CapabilitySet{}),
				Profile:      nil,
			})
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to load profile")
		return
	}

	caps := roles.Capabilities(profile.Role)
	screen := roles.ScreenFor(true, true, profile.IsApproved, profile.Role)

	sections := []dto.SectionInfo{}
	if screen == roles.ScreenDashboard || screen == roles.ScreenAdmin {
		for _, s := range roles.SectionsFor(caps) {
			sections = append(sections, dto.SectionInfo{ID: s.ID, Label: s.Label})
		}
	}

	resp := toProfileResponse(profile)
	_ = c.JSON(200, dto.SessionResponse{
		Screen:       string(screen),
		Sections:     sections,
		Capabilities: capabilityMap(caps),
		Profile:      &resp,
	})
}

// UpdateName lets any signed-in account change its own display name,
// including accounts still waiting on approval.
func (h *SessionHandler) UpdateName(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateNameRequest
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

	profile, err := h.profileService.UpdateName(ctx, userID, req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.NotFound("profile not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to update name")
		return
	}

	resp := toProfileResponse(profile)
	_ = c.JSON(200, resp)
}

func capabilityMap(s roles.CapabilitySet) map[string]bool {
	return map[string]bool{
		string(roles.CapManageUsers):    s.ManageUsers,
		string(roles.CapManageStudents): s.ManageStudents,
		string(roles.CapManageSchedule): s.ManageSchedule,
		string(roles.CapManageGrading):  s.ManageGrading,
		string(roles.CapViewAttendance): s.ViewAttendance,
		string(roles.CapManageExams):    s.ManageExams,
		string(roles.CapViewAllGroups):  s.ViewAllGroups,
	}
}

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:         p.ID,
		Email:      p.Email,
		FullName:   p.FullName,
		Role:       p.Role,
		RoleLabel:  roles.Label(p.Role),
		IsApproved: p.IsApproved,
		CreatedAt:  p.CreatedAt,
	}
	if p.Group != nil {
		resp.Group = &dto.GroupResponse{
			ID:          p.Group.ID,
			Name:        p.Group.Name,
			Description: p.Group.Description,
		}
	}
	return resp
}
