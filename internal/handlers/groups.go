package handlers

import (
	"errors"
	"time"

	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type GroupHandler struct {
	groupService GroupServiceInterface
	timeout      time.Duration
}

func NewGroupHandler(groupService GroupServiceInterface, timeout time.Duration) *GroupHandler {
	return &GroupHandler{groupService: groupService, timeout: timeout}
}

// List returns all groups ordered by name. Groups are seeded reference data;
// there is no mutation surface.
func (h *GroupHandler) List(c *drift.Context) {
	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	groups, err := h.groupService.List(ctx)
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to list groups")
		return
	}

	resp := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, dto.GroupResponse{ID: g.ID, Name: g.Name, Description: g.Description})
	}

	_ = c.JSON(200, resp)
}

func (h *GroupHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid group id")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	group, err := h.groupService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			c.NotFound("group not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to load group")
		return
	}

	_ = c.JSON(200, dto.GroupResponse{ID: group.ID, Name: group.Name, Description: group.Description})
}
