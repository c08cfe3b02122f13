package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
)

// ContentRepository persists the authoring catalog (materials, units,
// themes, questions), timetable slots, and lesson registration.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository constructs the repository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Catalog dumps materials, units, and themes for the registration UI.
func (r *ContentRepository) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	catalog := &dto.CatalogResponse{}

	if err := r.db.SelectContext(ctx, &catalog.Materials,
		`SELECT material_id, material_name FROM materials ORDER BY material_id`); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	if err := r.db.SelectContext(ctx, &catalog.Units,
		`SELECT unit_id, material_id, part_name, chapter_name, unit_name FROM units ORDER BY unit_id`); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	if err := r.db.SelectContext(ctx, &catalog.Themes,
		`SELECT lesson_theme_id, unit_id, lesson_theme_name FROM lesson_themes ORDER BY lesson_theme_id`); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return catalog, nil
}

// ThemeExists reports whether a theme id is known.
func (r *ContentRepository) ThemeExists(ctx context.Context, themeID int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM lesson_themes WHERE lesson_theme_id = $1)`, themeID); err != nil {
		return false, fmt.Errorf("check theme: %w", err)
	}
	return exists, nil
}

// ThemeQuestionIDs returns every question id of a theme in ascending
// order.
func (r *ContentRepository) ThemeQuestionIDs(ctx context.Context, themeID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids,
		`SELECT lesson_question_id FROM lesson_questions
WHERE lesson_theme_id = $1 ORDER BY lesson_question_id ASC`, themeID); err != nil {
		return nil, fmt.Errorf("list theme questions: %w", err)
	}
	return ids, nil
}

// FindQuestion fetches one question; returns nil when it does not exist.
func (r *ContentRepository) FindQuestion(ctx context.Context, questionID int64) (*models.Question, error) {
	const query = `SELECT lesson_question_id, lesson_theme_id, question_label,
choice_text_1, choice_text_2, choice_text_3, choice_text_4, correct_choice
FROM lesson_questions WHERE lesson_question_id = $1`
	var question models.Question
	if err := r.db.GetContext(ctx, &question, query, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return &question, nil
}

// FindTimetable returns a slot matching all four calendar fields, or
// nil when no such slot exists.
func (r *ContentRepository) FindTimetable(ctx context.Context, req dto.TimetableCreateRequest) (*models.TimetableSlot, error) {
	const query = `SELECT timetable_id, date, day_of_week, period, time
FROM timetable_slots WHERE date = $1 AND day_of_week = $2 AND period = $3 AND time = $4`

	var slot models.TimetableSlot
	if err := r.db.GetContext(ctx, &slot, query, req.Date, req.DayOfWeek, req.Period, req.Time); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find timetable slot: %w", err)
	}
	return &slot, nil
}

// CreateTimetable inserts a calendar slot and fills in the id.
func (r *ContentRepository) CreateTimetable(ctx context.Context, slot *models.TimetableSlot) error {
	const query = `INSERT INTO timetable_slots (date, day_of_week, period, time)
VALUES ($1, $2, $3, $4) RETURNING timetable_id`

	if err := r.db.GetContext(ctx, &slot.ID, query,
		slot.Date, slot.DayOfWeek, slot.Period, slot.Time); err != nil {
		return fmt.Errorf("create timetable slot: %w", err)
	}
	return nil
}

// RegisterLesson creates a lesson and its theme registrations in one
// transaction.
func (r *ContentRepository) RegisterLesson(ctx context.Context, req dto.RegisterLessonRequest) (resp *dto.RegisterLessonResponse, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin lesson registration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lessonID int64
	if err = tx.GetContext(ctx, &lessonID,
		`INSERT INTO lessons (class_id, timetable_id, lesson_name, lesson_status)
VALUES ($1, $2, $3, $4) RETURNING lesson_id`,
		req.ClassID, req.TimetableID, req.LessonName, models.StatusNotStarted); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	registrationIDs := make([]int64, 0, len(req.ThemeIDs))
	for _, themeID := range req.ThemeIDs {
		var regID int64
		if err = tx.GetContext(ctx, &regID,
			`INSERT INTO lesson_registrations (lesson_id, lesson_theme_id, exercise_status)
VALUES ($1, $2, $3) RETURNING lesson_registration_id`,
			lessonID, themeID, models.StatusNotStarted); err != nil {
			return nil, fmt.Errorf("register theme %d: %w", themeID, err)
		}
		registrationIDs = append(registrationIDs, regID)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit lesson registration: %w", err)
	}
	return &dto.RegisterLessonResponse{LessonID: lessonID, RegistrationIDs: registrationIDs}, nil
}

// Calendar lists timetable slots joined to their lessons and classes.
func (r *ContentRepository) Calendar(ctx context.Context) ([]dto.CalendarEntry, error) {
	const query = `
SELECT
	ts.timetable_id,
	ts.date,
	ts.day_of_week,
	ts.period,
	ts.time,
	l.lesson_id,
	l.class_id,
	l.lesson_name,
	l.lesson_status,
	c.class_name,
	c.grade
FROM timetable_slots ts
JOIN lessons l ON l.timetable_id = ts.timetable_id
JOIN classes c ON c.class_id = l.class_id
ORDER BY ts.date, ts.period`

	var entries []dto.CalendarEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list registration calendar: %w", err)
	}
	return entries, nil
}

// ThemeBlocks returns the registered themes of a lesson with their
// unit and material placement.
func (r *ContentRepository) ThemeBlocks(ctx context.Context, lessonID int64) ([]dto.LessonThemeBlock, error) {
	const query = `
SELECT
	reg.lesson_registration_id,
	t.lesson_theme_id,
	t.lesson_theme_name,
	u.unit_id,
	u.part_name,
	u.chapter_name,
	u.unit_name,
	m.material_id,
	m.material_name
FROM lesson_registrations reg
JOIN lesson_themes t ON t.lesson_theme_id = reg.lesson_theme_id
JOIN units u ON u.unit_id = t.unit_id
JOIN materials m ON m.material_id = u.material_id
WHERE reg.lesson_id = $1
ORDER BY reg.lesson_registration_id`

	var blocks []dto.LessonThemeBlock
	if err := r.db.SelectContext(ctx, &blocks, query, lessonID); err != nil {
		return nil, fmt.Errorf("list lesson theme blocks: %w", err)
	}
	return blocks, nil
}
