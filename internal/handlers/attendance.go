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

type AttendanceHandler struct {
	attendanceService AttendanceServiceInterface
	timeout           time.Duration
}

func NewAttendanceHandler(attendanceService AttendanceServiceInterface, timeout time.Duration) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, timeout: timeout}
}

// List returns the attendance sheet for one day (?date=YYYY-MM-DD, defaults
// to today; ?class= narrows to a class). Group-scoped roles only see their
// own group's students.
func (h *AttendanceHandler) List(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}

	caps := roles.Capabilities(profile.Role)
	if !caps.ViewAttendance {
		c.Forbidden("insufficient permissions")
		return
	}

	date := time.Now().Truncate(24 * time.Hour)
	if q := c.QueryParam("date"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.BadRequest("invalid date")
			return
		}
		date = d
	}

	var groupID *uuid.UUID
	if !caps.ViewAllGroups {
		if profile.GroupID == nil {
			_ = c.JSON(200, []dto.AttendanceRecordResponse{})
			return
		}
		groupID = profile.GroupID
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	records, err := h.attendanceService.ListByDate(ctx, date, c.QueryParam("class"), groupID)
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to list attendance")
		return
	}

	resp := make([]dto.AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, toAttendanceResponse(r))
	}

	_ = c.JSON(200, resp)
}

// Record upserts one student's presence for a date. Attaching a grade needs
// the grading capability on top of attendance access.
func (h *AttendanceHandler) Record(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}

	caps := roles.Capabilities(profile.Role)
	if !caps.ViewAttendance {
		c.Forbidden("insufficient permissions")
		return
	}

	var req dto.RecordAttendanceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	if req.Grade != nil && !caps.ManageGrading {
		c.Forbidden("grading requires additional permissions")
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		c.BadRequest("invalid student id")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.BadRequest("invalid date")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	record, err := h.attendanceService.Upsert(ctx, studentID, date, *req.Present, req.Grade, profile.ID)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			c.BadRequest("student not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to record attendance")
		return
	}

	_ = c.JSON(200, toAttendanceResponse(*record))
}

func toAttendanceResponse(r models.AttendanceRecord) dto.AttendanceRecordResponse {
	return dto.AttendanceRecordResponse{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date,
		Present:   r.Present,
		Grade:     r.Grade,
		UpdatedAt: r.UpdatedAt,
	}
}
