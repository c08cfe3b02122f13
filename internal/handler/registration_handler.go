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

type registrationService interface {
	Catalog(ctx context.Context) (*dto.CatalogResponse, error)
	CreateTimetable(ctx context.Context, req dto.TimetableCreateRequest) (*models.TimetableSlot, error)
	RegisterLesson(ctx context.Context, req dto.RegisterLessonRequest) (*dto.RegisterLessonResponse, error)
	Calendar(ctx context.Context) ([]dto.CalendarEntry, error)
}

// RegistrationHandler exposes lesson authoring endpoints.
type RegistrationHandler struct {
	registrations registrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registrations registrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Catalog godoc
// @Summary Dump materials, units, and themes
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lesson_registrations/all [get]
func (h *RegistrationHandler) Catalog(c *gin.Context) {
	catalog, err := h.registrations.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, catalog)
}

// CreateTimetable godoc
// @Summary Register a timetable slot
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body dto.TimetableCreateRequest true "Timetable slot"
// @Success 201 {object} response.Envelope
// @Router /lesson_registrations/calendar [post]
func (h *RegistrationHandler) CreateTimetable(c *gin.Context) {
	var req dto.TimetableCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	slot, err := h.registrations.CreateTimetable(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Register godoc
// @Summary Register a lesson with its themes
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body dto.RegisterLessonRequest true "Lesson registration"
// @Success 201 {object} response.Envelope
// @Router /lesson_registrations [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	resp, err := h.registrations.RegisterLesson(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Calendar godoc
// @Summary List registered lessons with their timetable slots
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lesson_registrations/calendar [get]
func (h *RegistrationHandler) Calendar(c *gin.Context) {
	entries, err := h.registrations.Calendar(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}
