package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/repository"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/export"
)

// choiceLabels maps a stored choice index to the label shown on grade
// reports.
var choiceLabels = map[int]string{1: "A", 2: "B", 3: "C", 4: "D"}

type gradeRepository interface {
	RawData(ctx context.Context, lessonID int64) ([]repository.RawDataRow, error)
	ClassIDs(ctx context.Context, academicYear, grade int) ([]int64, error)
	StudentIDs(ctx context.Context, classIDs []int64) ([]int64, error)
	Summary(ctx context.Context, studentIDs []int64) ([]repository.SummaryRow, error)
	Comments(ctx context.Context, lessonID int64) ([]repository.CommentRow, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// GradeService serves the read-only grading views: raw per-answer data,
// per-question correctness aggregates, survey comments, and file
// exports.
type GradeService struct {
	grades   gradeRepository
	lessons  lessonReader
	cache    summaryCache
	cacheTTL time.Duration
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewGradeService constructs the grade service. cache may be nil to
// disable summary caching.
func NewGradeService(grades gradeRepository, lessons lessonReader, cache summaryCache, cacheTTL time.Duration, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		grades:   grades,
		lessons:  lessons,
		cache:    cache,
		cacheTTL: cacheTTL,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// RawData returns every (student, question, answer) triple of a lesson.
func (s *GradeService) RawData(ctx context.Context, lessonID int64) ([]dto.RawDataItem, error) {
	rows, err := s.rawRows(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RawDataItem, 0, len(rows))
	for _, row := range rows {
		item := dto.RawDataItem{
			Student: dto.StudentInfo{
				StudentID: row.StudentID,
				Name:      row.StudentName,
				ClassID:   row.ClassID,
			},
			Question: dto.QuestionInfo{
				QuestionID:    row.QuestionID,
				QuestionLabel: row.QuestionLabel,
				CorrectChoice: choiceLabels[row.CorrectChoice],
				PartName:      row.PartName,
				ChapterName:   row.ChapterName,
				UnitName:      row.UnitName,
				ThemeName:     row.ThemeName,
			},
			Answer: dto.AnswerInfo{
				IsCorrect: row.Correctness,
				StartUnix: row.StartUnix,
				EndUnix:   row.EndUnix,
			},
		}
		if row.ChoiceNumber != nil {
			if label, ok := choiceLabels[*row.ChoiceNumber]; ok {
				item.Answer.SelectedChoice = &label
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *GradeService) rawRows(ctx context.Context, lessonID int64) ([]repository.RawDataRow, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	rows, err := s.grades.RawData(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "GRADE_RAW_FAILED", 500, "failed to load grade data")
	}
	return rows, nil
}

// Summary aggregates per-question correctness over every class of one
// academic year and grade. Results are cached read-through.
func (s *GradeService) Summary(ctx context.Context, academicYear, grade int) (*dto.GradeSummaryResponse, error) {
	cacheKey := fmt.Sprintf("grade_summary:%d:%d", academicYear, grade)
	if s.cache != nil {
		var cached dto.GradeSummaryResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("grade summary cache read failed", zap.Error(err))
		}
	}

	classIDs, err := s.grades.ClassIDs(ctx, academicYear, grade)
	if err != nil {
		return nil, appErrors.Wrap(err, "GRADE_SUMMARY_FAILED", 500, "failed to resolve classes")
	}
	if len(classIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no classes match the given year and grade")
	}

	studentIDs, err := s.grades.StudentIDs(ctx, classIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, "GRADE_SUMMARY_FAILED", 500, "failed to resolve students")
	}
	if len(studentIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no students enrolled in the matching classes")
	}

	rows, err := s.grades.Summary(ctx, studentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, "GRADE_SUMMARY_FAILED", 500, "failed to aggregate answers")
	}

	summary := make([]dto.QuestionSummary, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, dto.QuestionSummary{
			QuestionID:     row.QuestionID,
			QuestionLabel:  row.QuestionLabel,
			TotalAnswers:   row.TotalAnswers,
			CorrectAnswers: row.CorrectAnswers,
			CorrectRate:    correctRate(row.CorrectAnswers, row.TotalAnswers),
		})
	}

	resp := &dto.GradeSummaryResponse{AcademicYear: academicYear, Grade: grade, Summary: summary}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("grade summary cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

// correctRate is a percentage rounded to one decimal place.
func correctRate(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// Comments lists survey comments attached to a lesson's themes.
func (s *GradeService) Comments(ctx context.Context, lessonID int64) (*dto.CommentsResponse, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	rows, err := s.grades.Comments(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "GRADE_COMMENTS_FAILED", 500, "failed to load comments")
	}

	comments := make([]dto.StudentComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, dto.StudentComment{
			StudentID:   row.StudentID,
			StudentName: row.StudentName,
			CommentText: row.CommentText,
		})
	}
	return &dto.CommentsResponse{LessonID: lessonID, Comments: comments}, nil
}

// ExportResult is a rendered grade report ready for download.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Export renders the raw grade data of a lesson as CSV or PDF.
func (s *GradeService) Export(ctx context.Context, lessonID int64, format string) (*ExportResult, error) {
	rows, err := s.rawRows(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"student_id", "student_name", "question_label", "selected_choice", "correct_choice", "is_correct"},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		selected, correct := "", ""
		if row.ChoiceNumber != nil {
			selected = choiceLabels[*row.ChoiceNumber]
		}
		if row.Correctness != nil {
			correct = strconv.FormatBool(*row.Correctness)
		}
		data.Rows = append(data.Rows, map[string]string{
			"student_id":      strconv.FormatInt(row.StudentID, 10),
			"student_name":    row.StudentName,
			"question_label":  row.QuestionLabel,
			"selected_choice": selected,
			"correct_choice":  choiceLabels[row.CorrectChoice],
			"is_correct":      correct,
		})
	}

	switch format {
	case "csv", "":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, "GRADE_EXPORT_FAILED", 500, "failed to render csv export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("lesson_%d_grades.csv", lessonID),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Render(data, fmt.Sprintf("Lesson %d grade report", lessonID))
		if err != nil {
			return nil, appErrors.Wrap(err, "GRADE_EXPORT_FAILED", 500, "failed to render pdf export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("lesson_%d_grades.pdf", lessonID),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}
}
