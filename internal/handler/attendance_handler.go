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

type attendanceService interface {
	Upsert(ctx context.Context, req dto.AttendanceUpsertRequest) (*models.Attendance, error)
	ListByLesson(ctx context.Context, lessonID int64) ([]models.Attendance, error)
	LessonInformation(ctx context.Context, lessonID int64) (*dto.LessonInformationResponse, error)
}

// AttendanceHandler exposes attendance and lesson information endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Upsert godoc
// @Summary Mark a student present or absent
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.AttendanceUpsertRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /lesson_attendance [put]
func (h *AttendanceHandler) Upsert(c *gin.Context) {
	var req dto.AttendanceUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	record, err := h.attendance.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// List godoc
// @Summary List the attendance marks of a lesson
// @Tags Attendance
// @Produce json
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lesson_attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	records, err := h.attendance.ListByLesson(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// LessonInformation godoc
// @Summary Flip a lesson live and return its registered themes
// @Tags Attendance
// @Produce json
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lesson_attendance/lesson_information [put]
func (h *AttendanceHandler) LessonInformation(c *gin.Context) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	resp, err := h.attendance.LessonInformation(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
