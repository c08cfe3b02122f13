package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/service"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/response"
)

type gradeService interface {
	RawData(ctx context.Context, lessonID int64) ([]dto.RawDataItem, error)
	Summary(ctx context.Context, academicYear, grade int) (*dto.GradeSummaryResponse, error)
	Comments(ctx context.Context, lessonID int64) (*dto.CommentsResponse, error)
	Export(ctx context.Context, lessonID int64, format string) (*service.ExportResult, error)
}

// GradeHandler exposes the grading report endpoints.
type GradeHandler struct {
	grades        gradeService
	exportEnabled bool
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades gradeService, exportEnabled bool) *GradeHandler {
	return &GradeHandler{grades: grades, exportEnabled: exportEnabled}
}

// RawData godoc
// @Summary Raw per-answer grade data of a lesson
// @Tags Grades
// @Produce json
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /grades/raw_data [get]
func (h *GradeHandler) RawData(c *gin.Context) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	items, err := h.grades.RawData(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Summary godoc
// @Summary Per-question correctness rates for a year and grade
// @Tags Grades
// @Produce json
// @Param academic_year query int true "Academic year"
// @Param grade query int true "Grade"
// @Success 200 {object} response.Envelope
// @Router /grades/grade_summary [get]
func (h *GradeHandler) Summary(c *gin.Context) {
	academicYear, err := strconv.Atoi(c.Query("academic_year"))
	if err != nil || academicYear <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid academic year"))
		return
	}
	grade, err := strconv.Atoi(c.Query("grade"))
	if err != nil || grade <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid grade"))
		return
	}

	resp, err := h.grades.Summary(c.Request.Context(), academicYear, grade)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Comments godoc
// @Summary Survey comments attached to a lesson
// @Tags Grades
// @Produce json
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /grades/comments [get]
func (h *GradeHandler) Comments(c *gin.Context) {
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	resp, err := h.grades.Comments(c.Request.Context(), lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Export godoc
// @Summary Download the raw grade data of a lesson as CSV or PDF
// @Tags Grades
// @Produce text/csv
// @Produce application/pdf
// @Param lesson_id query int true "Lesson ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "grade export is disabled"))
		return
	}
	lessonID, ok := idQuery(c, "lesson_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id"))
		return
	}

	result, err := h.grades.Export(c.Request.Context(), lessonID, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
