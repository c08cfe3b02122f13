package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	"github.com/school-dx/lesson-live-api/internal/realtime"
	"github.com/school-dx/lesson-live-api/internal/repository"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/jobs"
)

type answerSlotStore interface {
	Update(ctx context.Context, slotID int64, update repository.AnswerSlotUpdate) (*models.AnswerSlot, error)
	FindByID(ctx context.Context, slotID int64) (*models.AnswerSlot, error)
	ListByLesson(ctx context.Context, lessonID int64) ([]dto.DashboardAnswer, error)
	FindByKey(ctx context.Context, filter dto.RealtimeAnswerFilter) ([]models.AnswerSlot, error)
	ClearByLesson(ctx context.Context, lessonID int64) (int64, error)
}

type questionReader interface {
	FindQuestion(ctx context.Context, questionID int64) (*models.Question, error)
}

type lessonReader interface {
	FindByID(ctx context.Context, lessonID int64) (*models.Lesson, error)
}

type notificationQueue interface {
	Enqueue(job jobs.Job) error
}

// AnswerService applies student answer updates and feeds the dashboard
// reads.
type AnswerService struct {
	slots     answerSlotStore
	questions questionReader
	lessons   lessonReader
	queue     notificationQueue
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnswerService constructs the answer service. queue may be nil when
// real-time notifications are disabled.
func NewAnswerService(slots answerSlotStore, questions questionReader, lessons lessonReader, queue notificationQueue, validate *validator.Validate, logger *zap.Logger) *AnswerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerService{slots: slots, questions: questions, lessons: lessons, queue: queue, validator: validate, logger: logger}
}

// UpdateSlot applies a partial update to one answer slot. A wall-clock
// timestamp wins over its unix counterpart and derives it. When the
// request carries a choice without an explicit correctness override the
// correctness is computed against the question's correct choice, and an
// absent status defaults to answered. The committed change is followed
// by a fire-and-forget dashboard notification.
func (s *AnswerService) UpdateSlot(ctx context.Context, slotID int64, req dto.AnswerUpdateRequest) (*models.AnswerSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		return nil, appErrors.Wrap(err, "ANSWER_LOOKUP_FAILED", 500, "failed to load answer slot")
	}
	if slot == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "answer slot not found")
	}

	update := repository.AnswerSlotUpdate{
		ChoiceNumber: req.ChoiceNumber,
		Correctness:  req.Correctness,
		Status:       req.Status,
	}
	applyEdge(&update.StartTimestamp, &update.StartUnix, req.StartTimestamp, req.StartUnix)
	applyEdge(&update.EndTimestamp, &update.EndUnix, req.EndTimestamp, req.EndUnix)

	if req.ChoiceNumber != nil && req.Correctness == nil {
		question, err := s.questions.FindQuestion(ctx, slot.QuestionID)
		if err != nil {
			return nil, appErrors.Wrap(err, "QUESTION_LOOKUP_FAILED", 500, "failed to load question")
		}
		if question != nil {
			correct := *req.ChoiceNumber == question.CorrectChoice
			update.Correctness = &correct
		}
		if req.Status == nil {
			answered := models.AnswerStatusAnswered
			update.Status = &answered
		}
	}

	updated, err := s.slots.Update(ctx, slotID, update)
	if err != nil {
		return nil, appErrors.Wrap(err, "ANSWER_UPDATE_FAILED", 500, "failed to update answer slot")
	}
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "answer slot not found")
	}

	s.notifyAnswered(updated)
	return updated, nil
}

// applyEdge resolves one timestamp edge of the answer interval.
func applyEdge(ts **time.Time, unix **int64, reqTS *time.Time, reqUnix *int64) {
	switch {
	case reqTS != nil:
		*ts = reqTS
		derived := reqTS.Unix()
		*unix = &derived
	case reqUnix != nil:
		*unix = reqUnix
	}
}

func (s *AnswerService) notifyAnswered(slot *models.AnswerSlot) {
	if s.queue == nil {
		return
	}
	payload := realtime.EncodeStudentAnswered(slot.LessonID, slot.StudentID, slot.ID)
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    realtime.EventStudentAnswered,
		Payload: payload,
	})
	if err != nil {
		s.logger.Warn("answer notification dropped",
			zap.Int64("slot_id", slot.ID),
			zap.Error(err))
	}
}

// ListByLesson returns the dashboard rows of one lesson. A lesson with
// no provisioned slots yields an empty list, not an error.
func (s *AnswerService) ListByLesson(ctx context.Context, lessonID int64) ([]dto.DashboardAnswer, error) {
	rows, err := s.slots.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "ANSWER_LIST_FAILED", 500, "failed to list answers")
	}
	if rows == nil {
		rows = []dto.DashboardAnswer{}
	}
	return rows, nil
}

// FindByKey resolves slots by their logical (theme, student, question)
// key, used by the dashboard when it only knows the wire identifiers.
func (s *AnswerService) FindByKey(ctx context.Context, filter dto.RealtimeAnswerFilter) ([]models.AnswerSlot, error) {
	slots, err := s.slots.FindByKey(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, "ANSWER_LOOKUP_FAILED", 500, "failed to resolve answer slots")
	}
	if len(slots) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no answer slots match the given key")
	}
	return slots, nil
}

// Clear removes every slot of a lesson. Administrative use only.
func (s *AnswerService) Clear(ctx context.Context, lessonID int64) (*dto.ClearAnswersResponse, error) {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")
	}
	if lesson == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}

	deleted, err := s.slots.ClearByLesson(ctx, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, "ANSWER_CLEAR_FAILED", 500, "failed to clear answers")
	}

	s.logger.Info("answer slots cleared",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("deleted_rows", deleted))
	return &dto.ClearAnswersResponse{LessonID: lessonID, DeletedRows: deleted}, nil
}
