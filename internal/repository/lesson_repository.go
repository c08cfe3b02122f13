package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/school-dx/lesson-live-api/internal/models"
)

// LessonRepository provides persistence for lessons and their theme
// registrations.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs the repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// FindByID fetches a lesson; returns nil when it does not exist.
func (r *LessonRepository) FindByID(ctx context.Context, id int64) (*models.Lesson, error) {
	const query = `SELECT lesson_id, class_id, timetable_id, lesson_name, lesson_status
FROM lessons WHERE lesson_id = $1`

	var lesson models.Lesson
	if err := r.db.GetContext(ctx, &lesson, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return &lesson, nil
}

// UpdateStatus transitions a lesson's lifecycle status.
func (r *LessonRepository) UpdateStatus(ctx context.Context, id int64, status int) error {
	const query = `UPDATE lessons SET lesson_status = $1 WHERE lesson_id = $2`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindRegistration locates the registration row linking a lesson to a
// theme; returns nil when the pair is not registered.
func (r *LessonRepository) FindRegistration(ctx context.Context, lessonID, themeID int64) (*models.ThemeRegistration, error) {
	const query = `SELECT lesson_registration_id, lesson_id, lesson_theme_id, exercise_status
FROM lesson_registrations WHERE lesson_id = $1 AND lesson_theme_id = $2`

	var reg models.ThemeRegistration
	if err := r.db.GetContext(ctx, &reg, query, lessonID, themeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get theme registration: %w", err)
	}
	return &reg, nil
}

// UpdateExerciseStatus rewrites the exercise sub-status of one
// registration. Re-invoking with the same value is a harmless rewrite.
func (r *LessonRepository) UpdateExerciseStatus(ctx context.Context, registrationID int64, status int) error {
	const query = `UPDATE lesson_registrations SET exercise_status = $1 WHERE lesson_registration_id = $2`

	if _, err := r.db.ExecContext(ctx, query, status, registrationID); err != nil {
		return fmt.Errorf("update exercise status: %w", err)
	}
	return nil
}
