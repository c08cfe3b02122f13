package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/school-dx/lesson-live-api/internal/models"
)

// SurveyRepository persists lesson surveys.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository constructs the repository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// Create inserts a survey and fills in the generated id.
func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	const query = `INSERT INTO lesson_surveys
(student_id, lesson_id, lesson_theme_id, survey_status, understanding_level, difficulty_point, student_comment)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING lesson_survey_id`

	if err := r.db.GetContext(ctx, &survey.ID, query,
		survey.StudentID, survey.LessonID, survey.ThemeID, survey.SurveyStatus,
		survey.UnderstandingLevel, survey.DifficultyPoint, survey.StudentComment); err != nil {
		return fmt.Errorf("create survey: %w", err)
	}
	return nil
}

// ListByTheme returns every survey submitted for a theme.
func (r *SurveyRepository) ListByTheme(ctx context.Context, themeID int64) ([]models.Survey, error) {
	const query = `SELECT lesson_survey_id, student_id, lesson_id, lesson_theme_id,
	survey_status, understanding_level, difficulty_point, student_comment
FROM lesson_surveys WHERE lesson_theme_id = $1 ORDER BY lesson_survey_id`

	var surveys []models.Survey
	if err := r.db.SelectContext(ctx, &surveys, query, themeID); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	return surveys, nil
}
