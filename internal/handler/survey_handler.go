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

type surveyService interface {
	Create(ctx context.Context, req dto.SurveyCreateRequest) (*models.Survey, error)
	ListByTheme(ctx context.Context, themeID int64) ([]models.Survey, error)
}

// SurveyHandler exposes survey endpoints.
type SurveyHandler struct {
	surveys surveyService
}

// NewSurveyHandler constructs SurveyHandler.
func NewSurveyHandler(surveys surveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

// Create godoc
// @Summary Record a student's theme feedback
// @Tags Surveys
// @Accept json
// @Produce json
// @Param payload body dto.SurveyCreateRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Router /lesson_surveys [post]
func (h *SurveyHandler) Create(c *gin.Context) {
	var req dto.SurveyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	survey, err := h.surveys.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, survey)
}

// ListByTheme godoc
// @Summary List the surveys recorded for a theme
// @Tags Surveys
// @Produce json
// @Param lesson_theme_id query int true "Theme ID"
// @Success 200 {object} response.Envelope
// @Router /lesson_surveys [get]
func (h *SurveyHandler) ListByTheme(c *gin.Context) {
	themeID, ok := idQuery(c, "lesson_theme_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid theme id"))
		return
	}

	surveys, err := h.surveys.ListByTheme(c.Request.Context(), themeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, surveys)
}
