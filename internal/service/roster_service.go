package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type rosterRepository interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	FindClassByID(ctx context.Context, id int64) (*models.Class, error)
	CreateClass(ctx context.Context, class *models.Class) error
	ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error)
	FindStudentByMail(ctx context.Context, mail string) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) error
}

// RosterService manages classes and student enrollment.
type RosterService struct {
	roster    rosterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs the roster service.
func NewRosterService(roster rosterRepository, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{roster: roster, validator: validate, logger: logger}
}

// ListClasses returns every class.
func (s *RosterService) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.roster.ListClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, "CLASS_LIST_FAILED", 500, "failed to list classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, nil
}

// CreateClass registers a class.
func (s *RosterService) CreateClass(ctx context.Context, req dto.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	class := &models.Class{
		ClassName:    req.ClassName,
		Grade:        req.Grade,
		Teacher:      req.Teacher,
		AcademicYear: req.AcademicYear,
	}
	if err := s.roster.CreateClass(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, "CLASS_CREATE_FAILED", 500, "failed to create class")
	}
	s.logger.Info("class created", zap.Int64("class_id", class.ID))
	return class, nil
}

// ListStudents returns every student of one class.
func (s *RosterService) ListStudents(ctx context.Context, classID int64) ([]models.Student, error) {
	class, err := s.roster.FindClassByID(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, "CLASS_LOOKUP_FAILED", 500, "failed to load class")
	}
	if class == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	students, err := s.roster.ListStudentsByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, "STUDENT_LIST_FAILED", 500, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// CreateStudent enrolls a student. The password is stored as a bcrypt
// hash and the mail address must be unused.
func (s *RosterService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	class, err := s.roster.FindClassByID(ctx, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, "CLASS_LOOKUP_FAILED", 500, "failed to load class")
	}
	if class == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	existing, err := s.roster.FindStudentByMail(ctx, req.MailAddress)
	if err != nil {
		return nil, appErrors.Wrap(err, "STUDENT_LOOKUP_FAILED", 500, "failed to check mail address")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "mail address already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, "PASSWORD_HASH_FAILED", 500, "failed to hash password")
	}

	student := &models.Student{
		ClassID:        req.ClassID,
		StudentNumber:  req.StudentNumber,
		Name:           req.Name,
		MailAddress:    req.MailAddress,
		PasswordHash:   string(hash),
		EnrollmentYear: req.EnrollmentYear,
	}
	if err := s.roster.CreateStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, "STUDENT_CREATE_FAILED", 500, "failed to create student")
	}

	s.logger.Info("student enrolled",
		zap.Int64("student_id", student.ID),
		zap.Int64("class_id", student.ClassID))
	return student, nil
}
