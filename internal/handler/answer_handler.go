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

type answerService interface {
	UpdateSlot(ctx context.Context, slotID int64, req dto.AnswerUpdateRequest) (*models.AnswerSlot, error)
	ListByLesson(ctx context.Context, lessonID int64) ([]dto.DashboardAnswer, error)
	FindByKey(ctx context.Context, filter dto.RealtimeAnswerFilter) ([]models.AnswerSlot, error)
	Clear(ctx context.Context, lessonID int64) (*dto.ClearAnswersResponse, error)
}

// AnswerHandler exposes the answer slot endpoints.
type AnswerHandler struct {
	answers answerService
}

// NewAnswerHandler constructs AnswerHandler.
func NewAnswerHandler(answers answerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// Update godoc
// @Summary Apply a partial update to one answer slot
// @Tags Answers
// @Accept json
// @Produce json
// @Param lesson_answer_data_id query int true "Answer slot ID"
// @Param payload body dto.AnswerUpdateRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Router /answers [put]
func (h *AnswerHandler) Update(c *gin.Context) {
	slotID, ok := idQuery(c, "lesson_answer_data_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid answer slot id"))
		return
	}

	var req dto.AnswerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	slot, err := h.answers.UpdateSlot(c.Request.Context(), slotID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot)
}

// List godoc
// @Summary List the answer slots of a lesson for the dashboard
// @Tags Answers
// @Produce json
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /answers [get]
func (h *AnswerHandler) List(c *gin.Context) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	rows, err := h.answers.ListByLesson(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Realtime godoc
// @Summary Resolve answer slots by their logical key
// @Tags Answers
// @Produce json
// @Param lesson_theme_id query int true "Theme ID"
// @Param student_id query int true "Student ID"
// @Param question_id query int true "Question ID"
// @Success 200 {object} response.Envelope
// @Router /answers/realtime [get]
func (h *AnswerHandler) Realtime(c *gin.Context) {
	themeID, ok := idQuery(c, "lesson_theme_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid theme id"))
		return
	}
	studentID, ok := idQuery(c, "student_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student id"))
		return
	}
	questionID, ok := idQuery(c, "question_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid question id"))
		return
	}

	slots, err := h.answers.FindByKey(c.Request.Context(), dto.RealtimeAnswerFilter{
		ThemeID:    themeID,
		StudentID:  studentID,
		QuestionID: questionID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}

// Clear godoc
// @Summary Bulk-clear every answer slot of a lesson
// @Tags Answers
// @Produce json
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /answers [delete]
func (h *AnswerHandler) Clear(c *gin.Context) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	resp, err := h.answers.Clear(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
