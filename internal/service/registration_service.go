package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type contentRepository interface {
	Catalog(ctx context.Context) (*dto.CatalogResponse, error)
	ThemeExists(ctx context.Context, themeID int64) (bool, error)
	FindTimetable(ctx context.Context, req dto.TimetableCreateRequest) (*models.TimetableSlot, error)
	CreateTimetable(ctx context.Context, slot *models.TimetableSlot) error
	RegisterLesson(ctx context.Context, req dto.RegisterLessonRequest) (*dto.RegisterLessonResponse, error)
	Calendar(ctx context.Context) ([]dto.CalendarEntry, error)
}

type classReader interface {
	FindClassByID(ctx context.Context, id int64) (*models.Class, error)
}

// RegistrationService handles lesson authoring: the catalog dump,
// timetable slots, lesson registration, and the calendar listing.
type RegistrationService struct {
	content   contentRepository
	classes   classReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(content contentRepository, classes classReader, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{content: content, classes: classes, validator: validate, logger: logger}
}

// Catalog dumps materials, units, and themes for the registration UI.
func (s *RegistrationService) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	catalog, err := s.content.Catalog(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, "CATALOG_FAILED", 500, "failed to load catalog")
	}
	return catalog, nil
}

// CreateTimetable registers a calendar slot. An exact match on all four
// fields returns the existing slot instead of inserting a duplicate.
func (s *RegistrationService) CreateTimetable(ctx context.Context, req dto.TimetableCreateRequest) (*models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	existing, err := s.content.FindTimetable(ctx, req)
	if err != nil {
		return nil, appErrors.Wrap(err, "TIMETABLE_LOOKUP_FAILED", 500, "failed to look up timetable slot")
	}
	if existing != nil {
		return existing, nil
	}

	slot := &models.TimetableSlot{
		Date:      req.Date,
		DayOfWeek: req.DayOfWeek,
		Period:    req.Period,
		Time:      req.Time,
	}
	if err := s.content.CreateTimetable(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, "TIMETABLE_CREATE_FAILED", 500, "failed to create timetable slot")
	}
	s.logger.Info("timetable slot created", zap.Int64("timetable_id", slot.ID))
	return slot, nil
}

// RegisterLesson creates a lesson in NOT_STARTED state together with
// one registration row per requested theme.
func (s *RegistrationService) RegisterLesson(ctx context.Context, req dto.RegisterLessonRequest) (*dto.RegisterLessonResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	class, err := s.classes.FindClassByID(ctx, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, "CLASS_LOOKUP_FAILED", 500, "failed to load class")
	}
	if class == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	for _, themeID := range req.ThemeIDs {
		exists, err := s.content.ThemeExists(ctx, themeID)
		if err != nil {
			return nil, appErrors.Wrap(err, "THEME_LOOKUP_FAILED", 500, "failed to load theme")
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "theme not found")
		}
	}

	resp, err := s.content.RegisterLesson(ctx, req)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_REGISTER_FAILED", 500, "failed to register lesson")
	}

	s.logger.Info("lesson registered",
		zap.Int64("lesson_id", resp.LessonID),
		zap.Int("themes", len(resp.RegistrationIDs)))
	return resp, nil
}

// Calendar lists every registered lesson joined to its timetable slot
// and class.
func (s *RegistrationService) Calendar(ctx context.Context) ([]dto.CalendarEntry, error) {
	entries, err := s.content.Calendar(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, "CALENDAR_FAILED", 500, "failed to load calendar")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no registered lessons")
	}
	return entries, nil
}
