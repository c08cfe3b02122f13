package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
)

// questionsPerTheme caps provisioning at four questions per theme.
// Product policy: one quiz is at most four questions. The cap is taken
// from the ascending question-id order so truncation is deterministic.
const questionsPerTheme = 4

// ErrNoStudents signals that the lesson's class has no enrolled
// students, which makes a lesson start invalid.
var ErrNoStudents = errors.New("no students enrolled in class")

// AnswerSlotRepository persists per-student-per-question answer slots.
type AnswerSlotRepository struct {
	db *sqlx.DB
}

// NewAnswerSlotRepository constructs the repository.
func NewAnswerSlotRepository(db *sqlx.DB) *AnswerSlotRepository {
	return &AnswerSlotRepository{db: db}
}

// Provision transitions the lesson to IN_PROGRESS and bulk-creates one
// READY slot per (student, question) pair for every registered theme
// that has no slots yet. The status flip and all inserts share one
// transaction: a failed insert leaves the lesson untouched. Returns
// the number of newly created slots.
func (r *AnswerSlotRepository) Provision(ctx context.Context, lessonID, classID int64) (created int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin provisioning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE lessons SET lesson_status = $1 WHERE lesson_id = $2`,
		models.StatusInProgress, lessonID)
	if err != nil {
		return 0, fmt.Errorf("mark lesson in progress: %w", err)
	}
	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		err = sql.ErrNoRows
		return 0, err
	}

	var themeIDs []int64
	if err = tx.SelectContext(ctx, &themeIDs,
		`SELECT lesson_theme_id FROM lesson_registrations WHERE lesson_id = $1 ORDER BY lesson_theme_id`,
		lessonID); err != nil {
		return 0, fmt.Errorf("list registered themes: %w", err)
	}
	if len(themeIDs) == 0 {
		// No themes registered: the status flip still commits.
		if err = tx.Commit(); err != nil {
			return 0, fmt.Errorf("commit provisioning: %w", err)
		}
		return 0, nil
	}

	var existingThemeIDs []int64
	if err = tx.SelectContext(ctx, &existingThemeIDs,
		`SELECT DISTINCT lesson_theme_id FROM lesson_answer_slots
WHERE lesson_id = $1 AND lesson_theme_id = ANY($2)`,
		lessonID, pq.Array(themeIDs)); err != nil {
		return 0, fmt.Errorf("check existing slots: %w", err)
	}
	existing := make(map[int64]struct{}, len(existingThemeIDs))
	for _, id := range existingThemeIDs {
		existing[id] = struct{}{}
	}

	var studentIDs []int64
	if err = tx.SelectContext(ctx, &studentIDs,
		`SELECT student_id FROM students WHERE class_id = $1 ORDER BY student_id`,
		classID); err != nil {
		return 0, fmt.Errorf("list enrolled students: %w", err)
	}
	if len(studentIDs) == 0 {
		err = ErrNoStudents
		return 0, err
	}

	pendingThemeIDs := make([]int64, 0, len(themeIDs))
	for _, id := range themeIDs {
		if _, ok := existing[id]; !ok {
			pendingThemeIDs = append(pendingThemeIDs, id)
		}
	}
	if len(pendingThemeIDs) == 0 {
		if err = tx.Commit(); err != nil {
			return 0, fmt.Errorf("commit provisioning: %w", err)
		}
		return 0, nil
	}

	// One batched read for every pending theme: the window keeps the
	// first N questions per theme in ascending id order.
	type themeQuestion struct {
		ThemeID    int64 `db:"lesson_theme_id"`
		QuestionID int64 `db:"lesson_question_id"`
	}
	var questions []themeQuestion
	if err = tx.SelectContext(ctx, &questions, `
SELECT lesson_theme_id, lesson_question_id FROM (
	SELECT lesson_theme_id, lesson_question_id,
		ROW_NUMBER() OVER (PARTITION BY lesson_theme_id ORDER BY lesson_question_id ASC) AS rn
	FROM lesson_questions
	WHERE lesson_theme_id = ANY($1)
) ranked
WHERE rn <= $2
ORDER BY lesson_theme_id, lesson_question_id`,
		pq.Array(pendingThemeIDs), questionsPerTheme); err != nil {
		return 0, fmt.Errorf("list theme questions: %w", err)
	}

	if len(questions) == 0 {
		if err = tx.Commit(); err != nil {
			return 0, fmt.Errorf("commit provisioning: %w", err)
		}
		return 0, nil
	}

	values := make([]string, 0, len(studentIDs)*len(questions))
	args := make([]interface{}, 0, len(studentIDs)*len(questions)*4+2)
	args = append(args, lessonID, models.AnswerStatusReady)
	for _, studentID := range studentIDs {
		for _, q := range questions {
			args = append(args, studentID, q.ThemeID, q.QuestionID)
			n := len(args)
			values = append(values, fmt.Sprintf("($%d, $1, $%d, $%d, $2)", n-2, n-1, n))
		}
	}

	insert := `INSERT INTO lesson_answer_slots
(student_id, lesson_id, lesson_theme_id, lesson_question_id, answer_status)
VALUES ` + strings.Join(values, ", ") + `
ON CONFLICT (lesson_id, student_id, lesson_question_id) DO NOTHING`

	res, err = tx.ExecContext(ctx, insert, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk insert answer slots: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk insert answer slots: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit provisioning: %w", err)
	}
	return int(inserted), nil
}

// AnswerSlotUpdate holds the resolved fields of a partial slot update.
// Nil fields are left untouched.
type AnswerSlotUpdate struct {
	ChoiceNumber   *int
	Correctness    *bool
	Status         *int
	StartTimestamp *time.Time
	StartUnix      *int64
	EndTimestamp   *time.Time
	EndUnix        *int64
}

// Update applies a partial update and returns the full updated row.
// Returns nil when the slot does not exist.
func (r *AnswerSlotRepository) Update(ctx context.Context, slotID int64, update AnswerSlotUpdate) (*models.AnswerSlot, error) {
	sets := make([]string, 0, 7)
	args := make([]interface{}, 0, 8)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.ChoiceNumber != nil {
		add("choice_number", *update.ChoiceNumber)
	}
	if update.Correctness != nil {
		add("answer_correctness", *update.Correctness)
	}
	if update.Status != nil {
		add("answer_status", *update.Status)
	}
	if update.StartTimestamp != nil {
		add("answer_start_timestamp", *update.StartTimestamp)
	}
	if update.StartUnix != nil {
		add("answer_start_unix", *update.StartUnix)
	}
	if update.EndTimestamp != nil {
		add("answer_end_timestamp", *update.EndTimestamp)
	}
	if update.EndUnix != nil {
		add("answer_end_unix", *update.EndUnix)
	}

	if len(sets) > 0 {
		args = append(args, slotID)
		query := fmt.Sprintf(`UPDATE lesson_answer_slots SET %s WHERE lesson_answer_slot_id = $%d`,
			strings.Join(sets, ", "), len(args))
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("update answer slot: %w", err)
		}
		if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
			return nil, nil
		}
	}

	return r.FindByID(ctx, slotID)
}

// FindByID fetches one slot; returns nil when it does not exist.
func (r *AnswerSlotRepository) FindByID(ctx context.Context, slotID int64) (*models.AnswerSlot, error) {
	const query = `SELECT lesson_answer_slot_id, student_id, lesson_id, lesson_theme_id, lesson_question_id,
	choice_number, answer_correctness, answer_status,
	answer_start_timestamp, answer_start_unix, answer_end_timestamp, answer_end_unix
FROM lesson_answer_slots WHERE lesson_answer_slot_id = $1`

	var slot models.AnswerSlot
	if err := r.db.GetContext(ctx, &slot, query, slotID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get answer slot: %w", err)
	}
	return &slot, nil
}

// ListByLesson returns the dashboard projection of every slot in a
// lesson, question label included.
func (r *AnswerSlotRepository) ListByLesson(ctx context.Context, lessonID int64) ([]dto.DashboardAnswer, error) {
	const query = `
SELECT
	s.lesson_answer_slot_id,
	s.student_id,
	s.lesson_id,
	s.lesson_question_id,
	q.question_label,
	s.answer_correctness,
	s.answer_status,
	s.answer_start_unix,
	s.answer_end_unix
FROM lesson_answer_slots s
JOIN lesson_questions q ON q.lesson_question_id = s.lesson_question_id
WHERE s.lesson_id = $1
ORDER BY s.student_id, s.lesson_question_id`

	var rows []dto.DashboardAnswer
	if err := r.db.SelectContext(ctx, &rows, query, lessonID); err != nil {
		return nil, fmt.Errorf("list lesson answers: %w", err)
	}
	return rows, nil
}

// FindByKey returns slots for a (theme, student, question) key.
func (r *AnswerSlotRepository) FindByKey(ctx context.Context, filter dto.RealtimeAnswerFilter) ([]models.AnswerSlot, error) {
	const query = `SELECT lesson_answer_slot_id, student_id, lesson_id, lesson_theme_id, lesson_question_id,
	choice_number, answer_correctness, answer_status,
	answer_start_timestamp, answer_start_unix, answer_end_timestamp, answer_end_unix
FROM lesson_answer_slots
WHERE lesson_theme_id = $1 AND student_id = $2 AND lesson_question_id = $3`

	var slots []models.AnswerSlot
	if err := r.db.SelectContext(ctx, &slots, query, filter.ThemeID, filter.StudentID, filter.QuestionID); err != nil {
		return nil, fmt.Errorf("find answer slots: %w", err)
	}
	return slots, nil
}

// ClearByLesson deletes every slot of a lesson. Administrative only.
func (r *AnswerSlotRepository) ClearByLesson(ctx context.Context, lessonID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM lesson_answer_slots WHERE lesson_id = $1`, lessonID)
	if err != nil {
		return 0, fmt.Errorf("clear lesson answer slots: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear lesson answer slots: %w", err)
	}
	return deleted, nil
}
