package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type surveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	ListByTheme(ctx context.Context, themeID int64) ([]models.Survey, error)
}

type studentReader interface {
	FindStudentByID(ctx context.Context, id int64) (*models.Student, error)
}

type themeChecker interface {
	ThemeExists(ctx context.Context, themeID int64) (bool, error)
}

// SurveyService records and lists per-theme student feedback.
type SurveyService struct {
	surveys   surveyRepository
	students  studentReader
	lessons   lessonReader
	themes    themeChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSurveyService constructs the survey service.
func NewSurveyService(surveys surveyRepository, students studentReader, lessons lessonReader, themes themeChecker, validate *validator.Validate, logger *zap.Logger) *SurveyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyService{surveys: surveys, students: students, lessons: lessons, themes: themes, validator: validate, logger: logger}
}

// Create records a survey after checking that the referenced student,
// lesson, and theme exist.
func (s *SurveyService) Create(ctx context.Context, req dto.SurveyCreateRequest) (*models.Survey, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	student, err := s.students.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, "STUDENT_LOOKUP_FAILED", 500, "failed to load student")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	if req.LessonID != nil {
		lesson, err := s.lessons.FindByID(ctx, *req.LessonID)
		if err != nil {
			return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
		}
		if lesson == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
	}

	if req.ThemeID != nil {
		exists, err := s.themes.ThemeExists(ctx, *req.ThemeID)
		if err != nil {
			return nil, appErrors.Wrap(err, "THEME_LOOKUP_FAILED", 500, "failed to load theme")
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "theme not found")
		}
	}

	survey := &models.Survey{
		StudentID:          req.StudentID,
		LessonID:           req.LessonID,
		ThemeID:            req.ThemeID,
		SurveyStatus:       models.StatusEnded,
		UnderstandingLevel: req.UnderstandingLevel,
		DifficultyPoint:    req.DifficultyPoint,
		StudentComment:     req.StudentComment,
	}
	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, appErrors.Wrap(err, "SURVEY_CREATE_FAILED", 500, "failed to record survey")
	}

	s.logger.Info("survey recorded",
		zap.Int64("survey_id", survey.ID),
		zap.Int64("student_id", survey.StudentID))
	return survey, nil
}

// ListByTheme lists every survey recorded for a theme.
func (s *SurveyService) ListByTheme(ctx context.Context, themeID int64) ([]models.Survey, error) {
	exists, err := s.themes.ThemeExists(ctx, themeID)
	if err != nil {
		return nil, appErrors.Wrap(err, "THEME_LOOKUP_FAILED", 500, "failed to load theme")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "theme not found")
	}

	surveys, err := s.surveys.ListByTheme(ctx, themeID)
	if err != nil {
		return nil, appErrors.Wrap(err, "SURVEY_LIST_FAILED", 500, "failed to list surveys")
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}
	return surveys, nil
}
