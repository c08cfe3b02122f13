package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/response"
)

type rosterService interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	CreateClass(ctx context.Context, req dto.CreateClassRequest) (*models.Class, error)
	ListStudents(ctx context.Context, classID int64) ([]models.Student, error)
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
}

// RosterHandler exposes class and student endpoints.
type RosterHandler struct {
	roster rosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(roster rosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// ListClasses godoc
// @Summary List classes
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *RosterHandler) ListClasses(c *gin.Context) {
	classes, err := h.roster.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// CreateClass godoc
// @Summary Register a class
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *RosterHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	class, err := h.roster.CreateClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// ListStudents godoc
// @Summary List the students of a class
// @Tags Roster
// @Produce json
// @Param class_id query int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *RosterHandler) ListStudents(c *gin.Context) {
	classID, ok := idQuery(c, "class_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}

	students, err := h.roster.ListStudents(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// CreateStudent godoc
// @Summary Enroll a student
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *RosterHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	student, err := h.roster.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	student.PasswordHash = ""
	response.Created(c, student)
}
