package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/avivgl/schoolhub-api/internal/models"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ExamHandler struct {
	examService ExamServiceInterface
	timeout     time.Duration
}

func NewExamHandler(examService ExamServiceInterface, timeout time.Duration) *ExamHandler {
	return &ExamHandler{examService: examService, timeout: timeout}
}

// List returns the exam calendar for one month. Defaults to the current
// month; override with ?year= and ?month=.
func (h *ExamHandler) List(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}
	if !roles.Capabilities(profile.Role).CanViewExams() {
		c.Forbidden("insufficient permissions")
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if q := c.QueryParam("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil || y < 2000 || y > 2100 {
			c.BadRequest("invalid year")
			return
		}
		year = y
	}
	if q := c.QueryParam("month"); q != "" {
		m, err := strconv.Atoi(q)
		if err != nil || m < 1 || m > 12 {
			c.BadRequest("invalid month")
			return
		}
		month = time.Month(m)
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	exams, err := h.examService.ListByMonth(ctx, year, month)
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to list exams")
		return
	}

	resp := make([]dto.ExamResponse, 0, len(exams))
	for _, e := range exams {
		resp = append(resp, toExamResponse(e))
	}

	_ = c.JSON(200, resp)
}

func (h *ExamHandler) Create(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}
	if !roles.Capabilities(profile.Role).ManageExams {
		c.Forbidden("insufficient permissions")
		return
	}

	var req dto.CreateExamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.BadRequest("invalid date")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	exam, err := h.examService.Create(ctx, models.Exam{
		Title:       req.Title,
		Subject:     req.Subject,
		ClassName:   req.ClassName,
		Date:        date,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		Kind:        req.Kind,
		TeacherName: req.TeacherName,
		Description: req.Description,
	})
	if err != nil {
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to create exam")
		return
	}

	_ = c.JSON(201, toExamResponse(*exam))
}

func (h *ExamHandler) Delete(c *drift.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.Unauthorized("not authenticated")
		return
	}
	if !roles.Capabilities(profile.Role).ManageExams {
		c.Forbidden("insufficient permissions")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid exam id")
		return
	}

	ctx, cancel := requestContext(h.timeout)
	defer cancel()

	if err := h.examService.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrExamNotFound) {
			c.NotFound("exam not found")
			return
		}
		if timedOut(c, err) {
			return
		}
		c.InternalServerError("failed to delete exam")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "exam deleted"})
}

func toExamResponse(e models.Exam) dto.ExamResponse {
	return dto.ExamResponse{
		ID:          e.ID,
		Title:       e.Title,
		Subject:     e.Subject,
		ClassName:   e.ClassName,
		Date:        e.Date,
		StartTime:   e.StartTime,
		DurationMin: e.DurationMin,
		Kind:        e.Kind,
		TeacherName: e.TeacherName,
		Description: e.Description,
	}
}
