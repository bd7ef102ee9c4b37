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

type StudentHandler struct {
	studentService StudentServiceInterface
	timeout        time.Duration
}

func NewStudentHandler(studentService StudentServiceInterface, timeout time.Duration) *StudentHandler {
	return &StudentHandler{studentService: studentService, timeout: timeout}
}

// List returns students, filtered to the caller's own group when the role is
// group-scoped. Supports ?group_id= and ?search= for roles that see all.
func (h *StudentHandler) List(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}

	caps := roles.Capabilities(profile.Role)

	var groupID *uuid.UUID
	if !caps.ViewAllGroups {
		if profile.GroupID == nil {
			_ = c.JSON(200, []dto.StudentResponse{})
			return
		}
		groupID = profile.GroupID
	} else if q := c.QueryParam("group_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			c.BadRequest("invalid group id")
			return
		}
		groupID = &id
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	students, err := h.studentService.List(ctx, groupID, c.QueryParam("search"))
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to list students")
		return
	}

	resp := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		resp = append(resp, toStudentResponse(&students[i]))
	}

	_ = c.JSON(200, resp)
}

func (h *StudentHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid student id")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	student, err := h.studentService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			c.NotFound("student not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to load student")
		return
	}

	_ = c.JSON(200, toStudentResponse(student))
}

func (h *StudentHandler) Create(c *drift.Context) {
	if !requireManageStudents(c) {
		return
	}

	var req dto.CreateStudentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	groupID, ok := parseOptionalUUID(c, req.GroupID)
	if !ok {
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	student, err := h.studentService.Create(ctx, req.FullName, req.ClassName, groupID, req.Subjects)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			c.BadRequest("group not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to create student")
		return
	}

	_ = c.JSON(201, toStudentResponse(student))
}

func (h *StudentHandler) Update(c *drift.Context) {
	if !requireManageStudents(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid student id")
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	groupID, ok := parseOptionalUUID(c, req.GroupID)
	if !ok {
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	student, err := h.studentService.Update(ctx, id, req.FullName, req.ClassName, groupID, req.Subjects)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			c.NotFound("student not found")
		case errors.Is(err, services.ErrGroupNotFound):
			c.BadRequest("group not found")
		default:
			if timedOut(c, err) {
				return
			}
			c.InternalServerError("failed to update student")
		}
		return
	}

	_ = c.JSON(200, toStudentResponse(student))
}

func (h *StudentHandler) Delete(c *drift.Context) {
	if !requireManageStudents(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid student id")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	if err := h.studentService.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			c.NotFound("student not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to delete student")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "student deleted"})
}

func requireManageStudents(c *drift.Context) bool {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return false
	}
	if !roles.Capabilities(profile.Role).ManageStudents {
		c.Forbidden("insufficient permissions")
		return false
	}
	return true
}

// parseOptionalUUID parses a possibly empty id string. On malformed input it
// writes the 400 and reports failure.
func parseOptionalUUID(c *drift.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.BadRequest("invalid group id")
		return nil, false
	}
	return &id, true
}

func toStudentResponse(s *models.Student) dto.StudentResponse {
	subjects := s.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return dto.StudentResponse{
		ID:            s.ID,
		FullName:      s.FullName,
		ClassName:     s.ClassName,
		GroupID:       s.GroupID,
		Subjects:      subjects,
		Average:       s.Average,
		AttendancePct: s.AttendancePct,
		CreatedAt:     s.CreatedAt,
	}
}
