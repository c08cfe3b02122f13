package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	"github.com/school-dx/lesson-live-api/internal/repository"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type lessonRepository interface {
	FindByID(ctx context.Context, lessonID int64) (*models.Lesson, error)
	UpdateStatus(ctx context.Context, lessonID int64, status int) error
	FindRegistration(ctx context.Context, lessonID, themeID int64) (*models.ThemeRegistration, error)
	UpdateExerciseStatus(ctx context.Context, registrationID int64, status int) error
}

type slotProvisioner interface {
	Provision(ctx context.Context, lessonID, classID int64) (int, error)
}

type themeQuestionReader interface {
	ThemeExists(ctx context.Context, themeID int64) (bool, error)
	ThemeQuestionIDs(ctx context.Context, themeID int64) ([]int64, error)
}

// LessonService drives the lesson and exercise lifecycle.
type LessonService struct {
	lessons lessonRepository
	slots   slotProvisioner
	content themeQuestionReader
	logger  *zap.Logger
}

// NewLessonService constructs the lesson service.
func NewLessonService(lessons lessonRepository, slots slotProvisioner, content themeQuestionReader, logger *zap.Logger) *LessonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonService{lessons: lessons, slots: slots, content: content, logger: logger}
}

// StartLesson flips the lesson to in-progress and provisions answer slots
// for every registered student/theme/question combination in one shot.
func (s *LessonService) StartLesson(ctx context.Context, lessonID int64) (*dto.StartLessonResponse, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	created, err := s.slots.Provision(ctx, lessonID, lesson.ClassID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoStudents):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no students found for the lesson class")
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		default:
			return nil, appErrors.Wrap(err, "LESSON_START_FAILED", 500, "failed to start lesson")
		}
	}

	s.logger.Info("lesson started",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("class_id", lesson.ClassID),
		zap.Int("created_slots", created))

	return &dto.StartLessonResponse{
		LessonID:     lessonID,
		Status:       models.StatusInProgress,
		CreatedSlots: created,
	}, nil
}

// EndLesson marks the lesson as ended. Already-ended lessons are accepted
// so the operation stays idempotent for retrying clients.
func (s *LessonService) EndLesson(ctx context.Context, lessonID int64) (*dto.LifecycleResponse, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	if err := s.lessons.UpdateStatus(ctx, lessonID, models.StatusEnded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return nil, appErrors.Wrap(err, "LESSON_END_FAILED", 500, "failed to end lesson")
	}

	s.logger.Info("lesson ended", zap.Int64("lesson_id", lessonID))
	return &dto.LifecycleResponse{LessonID: lessonID, Status: models.StatusEnded}, nil
}

// StartExercise moves a registered theme of the lesson into in-progress.
func (s *LessonService) StartExercise(ctx context.Context, lessonID, themeID int64) (*dto.ExerciseResponse, error) {
	return s.setExerciseStatus(ctx, lessonID, themeID, models.StatusInProgress)
}

// EndExercise closes a registered theme of the lesson.
func (s *LessonService) EndExercise(ctx context.Context, lessonID, themeID int64) (*dto.ExerciseResponse, error) {
	return s.setExerciseStatus(ctx, lessonID, themeID, models.StatusEnded)
}

func (s *LessonService) setExerciseStatus(ctx context.Context, lessonID, themeID int64, status int) (*dto.ExerciseResponse, error) {
	registration, err := s.lessons.FindRegistration(ctx, lessonID, themeID)
	if err != nil {
		return nil, appErrors.Wrap(err, "EXERCISE_LOOKUP_FAILED", 500, "failed to load theme registration")
	}
	if registration == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "theme is not registered for the lesson")
	}

	if err := s.lessons.UpdateExerciseStatus(ctx, registration.ID, status); err != nil {
		return nil, appErrors.Wrap(err, "EXERCISE_UPDATE_FAILED", 500, "failed to update exercise status")
	}

	s.logger.Info("exercise status updated",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("theme_id", themeID),
		zap.Int("status", status))

	return &dto.ExerciseResponse{LessonID: lessonID, ThemeID: themeID, ExerciseStatus: status}, nil
}

// QuestionCount reports how many questions a theme carries.
func (s *LessonService) QuestionCount(ctx context.Context, themeID int64) (*dto.QuestionCountResponse, error) {
	exists, err := s.content.ThemeExists(ctx, themeID)
	if err != nil {
		return nil, appErrors.Wrap(err, "THEME_LOOKUP_FAILED", 500, "failed to load theme")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "theme not found")
	}

	ids, err := s.content.ThemeQuestionIDs(ctx, themeID)
	if err != nil {
		return nil, appErrors.Wrap(err, "THEME_QUESTIONS_FAILED", 500, "failed to count theme questions")
	}
	return &dto.QuestionCountResponse{ThemeID: themeID, QuestionCount: len(ids), QuestionIDs: ids}, nil
}
