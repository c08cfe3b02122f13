package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// GradeRepository serves the read-only reporting queries joining
// answer slots to question correctness.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// RawDataRow is one joined (student, question, answer) row for a
// lesson. Theme and unit resolve through LEFT JOINs and may be null.
type RawDataRow struct {
	StudentID      int64      `db:"student_id"`
	StudentName    string     `db:"student_name"`
	ClassID        int64      `db:"class_id"`
	QuestionID     int64      `db:"lesson_question_id"`
	QuestionLabel  string     `db:"question_label"`
	CorrectChoice  int        `db:"correct_choice"`
	ChoiceNumber   *int       `db:"choice_number"`
	Correctness    *bool      `db:"answer_correctness"`
	StartUnix      *int64     `db:"answer_start_unix"`
	EndUnix        *int64     `db:"answer_end_unix"`
	PartName       *string    `db:"part_name"`
	ChapterName    *string    `db:"chapter_name"`
	UnitName       *string    `db:"unit_name"`
	ThemeName      *string    `db:"lesson_theme_name"`
	StartTimestamp *time.Time `db:"answer_start_timestamp"`
}

// RawData returns every answer row of a lesson joined to its student,
// question, and (when resolvable) theme and unit placement.
func (r *GradeRepository) RawData(ctx context.Context, lessonID int64) ([]RawDataRow, error) {
	const query = `
SELECT
	st.student_id,
	st.name AS student_name,
	st.class_id,
	q.lesson_question_id,
	q.question_label,
	q.correct_choice,
	s.choice_number,
	s.answer_correctness,
	s.answer_start_unix,
	s.answer_end_unix,
	s.answer_start_timestamp,
	u.part_name,
	u.chapter_name,
	u.unit_name,
	t.lesson_theme_name
FROM lesson_answer_slots s
JOIN students st ON st.student_id = s.student_id
JOIN lesson_questions q ON q.lesson_question_id = s.lesson_question_id
LEFT JOIN lesson_themes t ON t.lesson_theme_id = s.lesson_theme_id
LEFT JOIN units u ON u.unit_id = t.unit_id
WHERE s.lesson_id = $1
ORDER BY st.student_id, q.lesson_question_id`

	var rows []RawDataRow
	if err := r.db.SelectContext(ctx, &rows, query, lessonID); err != nil {
		return nil, fmt.Errorf("grade raw data: %w", err)
	}
	return rows, nil
}

// ClassIDs resolves the classes of one academic year and grade.
func (r *GradeRepository) ClassIDs(ctx context.Context, academicYear, grade int) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids,
		`SELECT class_id FROM classes WHERE academic_year = $1 AND grade = $2`,
		academicYear, grade); err != nil {
		return nil, fmt.Errorf("resolve classes: %w", err)
	}
	return ids, nil
}

// StudentIDs resolves the students enrolled in the given classes.
func (r *GradeRepository) StudentIDs(ctx context.Context, classIDs []int64) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids,
		`SELECT student_id FROM students WHERE class_id = ANY($1)`,
		pq.Array(classIDs)); err != nil {
		return nil, fmt.Errorf("resolve students: %w", err)
	}
	return ids, nil
}

// SummaryRow is the grouped correctness aggregate of one question.
type SummaryRow struct {
	QuestionID     int64  `db:"lesson_question_id"`
	QuestionLabel  string `db:"question_label"`
	TotalAnswers   int    `db:"total_answers"`
	CorrectAnswers int    `db:"correct_answers"`
}

// Summary aggregates, per question, the answered count and the count
// of answers matching the question's correct choice. Unanswered slots
// (null choice) are excluded entirely.
func (r *GradeRepository) Summary(ctx context.Context, studentIDs []int64) ([]SummaryRow, error) {
	const query = `
SELECT
	s.lesson_question_id,
	q.question_label,
	COUNT(s.lesson_answer_slot_id) AS total_answers,
	COALESCE(SUM(CASE WHEN s.choice_number = q.correct_choice THEN 1 ELSE 0 END), 0) AS correct_answers
FROM lesson_answer_slots s
JOIN lesson_questions q ON q.lesson_question_id = s.lesson_question_id
WHERE s.student_id = ANY($1) AND s.choice_number IS NOT NULL
GROUP BY s.lesson_question_id, q.question_label
ORDER BY s.lesson_question_id`

	var rows []SummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("grade summary: %w", err)
	}
	return rows, nil
}

// CommentRow is one survey comment joined to its author.
type CommentRow struct {
	StudentID   int64  `db:"student_id"`
	StudentName string `db:"name"`
	CommentText string `db:"student_comment"`
}

// Comments lists non-empty survey comments for the themes registered
// to a lesson.
func (r *GradeRepository) Comments(ctx context.Context, lessonID int64) ([]CommentRow, error) {
	const query = `
SELECT sv.student_id, st.name, sv.student_comment
FROM lesson_registrations reg
JOIN lesson_surveys sv ON sv.lesson_theme_id = reg.lesson_theme_id
JOIN students st ON st.student_id = sv.student_id
WHERE reg.lesson_id = $1
	AND sv.student_comment IS NOT NULL
	AND sv.student_comment <> ''
ORDER BY sv.lesson_survey_id`

	var rows []CommentRow
	if err := r.db.SelectContext(ctx, &rows, query, lessonID); err != nil {
		return nil, fmt.Errorf("grade comments: %w", err)
	}
	return rows, nil
}
