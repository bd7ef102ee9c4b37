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
	"github.com/rs/zerolog"
)

type ScheduleHandler struct {
	scheduleService ScheduleServiceInterface
	logger          zerolog.Logger
	timeout         time.Duration
}

func NewScheduleHandler(scheduleService ScheduleServiceInterface, logger zerolog.Logger, timeout time.Duration) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, logger: logger, timeout: timeout}
}

// List returns the timetable, optionally for one class via ?class=.
func (h *ScheduleHandler) List(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}
	if !roles.Capabilities(profile.Role).CanViewSchedule() {
		c.Forbidden("insufficient permissions")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	entries, err := h.scheduleService.List(ctx, c.QueryParam("class"))
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to list schedule")
		return
	}

	resp := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toScheduleResponse(e))
	}

	_ = c.JSON(200, resp)
}

func (h *ScheduleHandler) Create(c *drift.Context) {
	if !requireManageSchedule(c) {
		return
	}

	req, ok := bindScheduleRequest(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	entry, err := h.scheduleService.Create(ctx, scheduleEntryFromRequest(req))
	if err != nil {
		if errors.Is(err, services.ErrScheduleSlotTaken) {
			c.JSON(409, map[string]string{"error": "slot already taken for this class"})
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to create schedule entry")
		return
	}

	_ = c.JSON(201, toScheduleResponse(*entry))
}

func (h *ScheduleHandler) Update(c *drift.Context) {
	if !requireManageSchedule(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid schedule entry id")
		return
	}

	req, ok := bindScheduleRequest(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	entry, err := h.scheduleService.Update(ctx, id, scheduleEntryFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScheduleEntryNotFound):
			c.NotFound("schedule entry not found")
		case errors.Is(err, services.ErrScheduleSlotTaken):
			c.JSON(409, map[string]string{"error": "slot already taken for this class"})
		default:
			if timedOut(c, err) {
				return
			}
			c.InternalServerError("failed to update schedule entry")
		}
		return
	}

	_ = c.JSON(200, toScheduleResponse(*entry))
}

func (h *ScheduleHandler) Delete(c *drift.Context) {
	if !requireManageSchedule(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid schedule entry id")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	if err := h.scheduleService.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrScheduleEntryNotFound) {
			c.NotFound("schedule entry not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to delete schedule entry")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "schedule entry deleted"})
}

// Generate is reserved for automatic timetable generation. The endpoint
// exists so clients can discover it, but the solver is not implemented.
func (h *ScheduleHandler) Generate(c *drift.Context) {
	if !requireManageSchedule(c) {
		return
	}

	h.logger.Info().Msg("schedule generation requested")
	_ = c.JSON(501, map[string]string{"error": "schedule generation is not implemented"})
}

func requireManageSchedule(c *drift.Context) bool {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return false
	}
	if !roles.Capabilities(profile.Role).ManageSchedule {
		c.Forbidden("insufficient permissions")
		return false
	}
	return true
}

func bindScheduleRequest(c *drift.Context) (dto.ScheduleEntryRequest, bool) {
	var req dto.ScheduleEntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return req, false
	}
	return req, true
}

func scheduleEntryFromRequest(req dto.ScheduleEntryRequest) models.ScheduleEntry {
	return models.ScheduleEntry{
		DayOfWeek:   req.DayOfWeek,
		Slot:        req.Slot,
		Subject:     req.Subject,
		ClassName:   req.ClassName,
		TeacherName: req.TeacherName,
		Room:        req.Room,
	}
}

func toScheduleResponse(e models.ScheduleEntry) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		ID:          e.ID,
		DayOfWeek:   e.DayOfWeek,
		Slot:        e.Slot,
		Subject:     e.Subject,
		ClassName:   e.ClassName,
		TeacherName: e.TeacherName,
		Room:        e.Room,
	}
}
