package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	"github.com/school-dx/lesson-live-api/internal/realtime"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/jobs"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) error
	ListByLesson(ctx context.Context, lessonID int64) ([]models.Attendance, error)
}

type lessonStatusStore interface {
	FindByID(ctx context.Context, lessonID int64) (*models.Lesson, error)
	UpdateStatus(ctx context.Context, lessonID int64, status int) error
}

type themeBlockReader interface {
	ThemeBlocks(ctx context.Context, lessonID int64) ([]dto.LessonThemeBlock, error)
}

// AttendanceService records attendance and serves the lesson
// information screen students load when a lesson goes live.
type AttendanceService struct {
	attendance attendanceRepository
	lessons    lessonStatusStore
	content    themeBlockReader
	students   studentReader
	queue      notificationQueue
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAttendanceService constructs the attendance service. queue may be
// nil when real-time notifications are disabled.
func NewAttendanceService(attendance attendanceRepository, lessons lessonStatusStore, content themeBlockReader, students studentReader, queue notificationQueue, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		attendance: attendance,
		lessons:    lessons,
		content:    content,
		students:   students,
		queue:      queue,
		validator:  validate,
		logger:     logger,
	}
}

// Upsert marks a student present or absent for a lesson. Repeated calls
// overwrite the previous mark.
func (s *AttendanceService) Upsert(ctx context.Context, req dto.AttendanceUpsertRequest) (*models.Attendance, error) {
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

	lesson, err := s.lessons.FindByID(ctx, req.LessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	record := &models.Attendance{
		StudentID: req.StudentID,
		LessonID:  req.LessonID,
		Present:   req.Present,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, "ATTENDANCE_UPSERT_FAILED", 500, "failed to record attendance")
	}
	return record, nil
}

// ListByLesson returns every attendance mark of a lesson.
func (s *AttendanceService) ListByLesson(ctx context.Context, lessonID int64) ([]models.Attendance, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	records, err := s.attendance.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "ATTENDANCE_LIST_FAILED", 500, "failed to list attendance")
	}
	if records == nil {
		records = []models.Attendance{}
	}
	return records, nil
}

// LessonInformation serves the screen students open when a lesson goes
// live: it flips the lesson to in-progress, returns its registered
// themes with their content placement, and pushes a status broadcast to
// connected dashboards.
func (s *AttendanceService) LessonInformation(ctx context.Context, lessonID int64) (*dto.LessonInformationResponse, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	if lesson.Status != models.StatusInProgress {
		if err := s.lessons.UpdateStatus(ctx, lessonID, models.StatusInProgress); err != nil {
			return nil, appErrors.Wrap(err, "LESSON_STATUS_FAILED", 500, "failed to update lesson status")
		}
		lesson.Status = models.StatusInProgress
	}

	themes, err := s.content.ThemeBlocks(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_THEMES_FAILED", 500, "failed to load lesson themes")
	}
	if themes == nil {
		themes = []dto.LessonThemeBlock{}
	}

	s.notifyStatus(lessonID)

	return &dto.LessonInformationResponse{
		LessonID:   lessonID,
		ClassID:    lesson.ClassID,
		LessonName: lesson.LessonName,
		Status:     lesson.Status,
		Themes:     themes,
	}, nil
}

func (s *AttendanceService) notifyStatus(lessonID int64) {
	if s.queue == nil {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    realtime.EventLessonStatusUpdated,
		Payload: realtime.EncodeLessonStatusUpdated(lessonID),
	})
	if err != nil {
		s.logger.Warn("lesson status notification dropped",
			zap.Int64("lesson_id", lessonID),
			zap.Error(err))
	}
}
