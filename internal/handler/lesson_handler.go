package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/school-dx/lesson-live-api/internal/dto"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/response"
)

type lessonService interface {
	StartLesson(ctx context.Context, lessonID int64) (*dto.StartLessonResponse, error)
	EndLesson(ctx context.Context, lessonID int64) (*dto.LifecycleResponse, error)
	StartExercise(ctx context.Context, lessonID, themeID int64) (*dto.ExerciseResponse, error)
	EndExercise(ctx context.Context, lessonID, themeID int64) (*dto.ExerciseResponse, error)
	QuestionCount(ctx context.Context, themeID int64) (*dto.QuestionCountResponse, error)
}

// LessonHandler exposes the lesson and exercise lifecycle endpoints.
type LessonHandler struct {
	lessons lessonService
}

// NewLessonHandler constructs LessonHandler.
func NewLessonHandler(lessons lessonService) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// Start godoc
// @Summary Start a lesson and provision answer slots
// @Tags Lessons
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lessons/{lesson_id}/start [put]
func (h *LessonHandler) Start(c *gin.Context) {
	lessonID, ok := idParam(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	resp, err := h.lessons.StartLesson(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// End godoc
// @Summary End a lesson
// @Tags Lessons
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lessons/{lesson_id}/end [put]
func (h *LessonHandler) End(c *gin.Context) {
	lessonID, ok := idParam(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	resp, err := h.lessons.EndLesson(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// StartExercise godoc
// @Summary Start a registered theme's exercise
// @Tags Lessons
// @Produce json
// @Param theme_id path int true "Theme ID"
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lesson_themes/{theme_id}/start_exercise [put]
func (h *LessonHandler) StartExercise(c *gin.Context) {
	h.exercise(c, h.lessons.StartExercise)
}

// EndExercise godoc
// @Summary End a registered theme's exercise
// @Tags Lessons
// @Produce json
// @Param theme_id path int true "Theme ID"
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lesson_themes/{theme_id}/end_exercise [put]
func (h *LessonHandler) EndExercise(c *gin.Context) {
	h.exercise(c, h.lessons.EndExercise)
}

func (h *LessonHandler) exercise(c *gin.Context, fn func(context.Context, int64, int64) (*dto.ExerciseResponse, error)) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}
	themeID, ok := idParam(c, "theme_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid theme id"))
		return
	}

	resp, err := fn(c.Request.Context(), lessonID, themeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// QuestionCount godoc
// @Summary Count the questions of a theme
// @Tags Lessons
// @Produce json
// @Param theme_id path int true "Theme ID"
// @Success 200 {object} response.Envelope
// @Router /lesson_themes/{theme_id}/questions/count [get]
func (h *LessonHandler) QuestionCount(c *gin.Context) {
	themeID, ok := idParam(c, "theme_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid theme id"))
		return
	}

	resp, err := h.lessons.QuestionCount(c.Request.Context(), themeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
