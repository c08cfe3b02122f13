package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-dx/lesson-live-api/internal/models"
)

func newSlotMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func expectStatusFlip(mock sqlmock.Sqlmock, lessonID int64, affected int64) {
	mock.ExpectExec(regexp.QuoteMeta("UPDATE lessons SET lesson_status = $1 WHERE lesson_id = $2")).
		WithArgs(models.StatusInProgress, lessonID).
		WillReturnResult(sqlmock.NewResult(0, affected))
}

func TestProvisionCreatesSlots(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectBegin()
	expectStatusFlip(mock, 7, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lesson_theme_id FROM lesson_registrations WHERE lesson_id = $1 ORDER BY lesson_theme_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}).AddRow(2))
	mock.ExpectQuery("SELECT DISTINCT lesson_theme_id FROM lesson_answer_slots").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id FROM students WHERE class_id = $1 ORDER BY student_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(5).AddRow(6).AddRow(9))
	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER").
		WithArgs(sqlmock.AnyArg(), questionsPerTheme).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id", "lesson_question_id"}).
			AddRow(2, 31).AddRow(2, 32))
	mock.ExpectExec("INSERT INTO lesson_answer_slots").
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectCommit()

	created, err := repo.Provision(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionMissingLesson(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectBegin()
	expectStatusFlip(mock, 99, 0)
	mock.ExpectRollback()

	_, err := repo.Provision(context.Background(), 99, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionNoThemesCommitsStatusOnly(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectBegin()
	expectStatusFlip(mock, 7, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lesson_theme_id FROM lesson_registrations WHERE lesson_id = $1 ORDER BY lesson_theme_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}))
	mock.ExpectCommit()

	created, err := repo.Provision(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionNoStudentsRollsBack(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectBegin()
	expectStatusFlip(mock, 7, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lesson_theme_id FROM lesson_registrations WHERE lesson_id = $1 ORDER BY lesson_theme_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}).AddRow(2))
	mock.ExpectQuery("SELECT DISTINCT lesson_theme_id FROM lesson_answer_slots").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id FROM students WHERE class_id = $1 ORDER BY student_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}))
	mock.ExpectRollback()

	_, err := repo.Provision(context.Background(), 7, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoStudents))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionSkipsProvisionedThemes(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectBegin()
	expectStatusFlip(mock, 7, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lesson_theme_id FROM lesson_registrations WHERE lesson_id = $1 ORDER BY lesson_theme_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}).AddRow(2))
	mock.ExpectQuery("SELECT DISTINCT lesson_theme_id FROM lesson_answer_slots").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id FROM students WHERE class_id = $1 ORDER BY student_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(5))
	mock.ExpectCommit()

	created, err := repo.Provision(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionInsertFailureRollsBack(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectBegin()
	expectStatusFlip(mock, 7, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lesson_theme_id FROM lesson_registrations WHERE lesson_id = $1 ORDER BY lesson_theme_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}).AddRow(2))
	mock.ExpectQuery("SELECT DISTINCT lesson_theme_id FROM lesson_answer_slots").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id FROM students WHERE class_id = $1 ORDER BY student_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(5))
	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER").
		WithArgs(sqlmock.AnyArg(), questionsPerTheme).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_theme_id", "lesson_question_id"}).AddRow(2, 31))
	mock.ExpectExec("INSERT INTO lesson_answer_slots").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := repo.Provision(context.Background(), 7, 3)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppliesOnlyGivenFields(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	choice := 2
	mock.ExpectExec(regexp.QuoteMeta("UPDATE lesson_answer_slots SET choice_number = $1 WHERE lesson_answer_slot_id = $2")).
		WithArgs(choice, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT lesson_answer_slot_id, student_id, lesson_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"lesson_answer_slot_id", "student_id", "lesson_id", "lesson_theme_id", "lesson_question_id",
			"choice_number", "answer_correctness", "answer_status",
			"answer_start_timestamp", "answer_start_unix", "answer_end_timestamp", "answer_end_unix",
		}).AddRow(42, 5, 7, 2, 31, 2, nil, 1, nil, nil, nil, nil))

	slot, err := repo.Update(context.Background(), 42, AnswerSlotUpdate{ChoiceNumber: &choice})
	require.NoError(t, err)
	require.NotNil(t, slot)
	require.NotNil(t, slot.ChoiceNumber)
	assert.Equal(t, 2, *slot.ChoiceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingSlot(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	choice := 2
	mock.ExpectExec(regexp.QuoteMeta("UPDATE lesson_answer_slots SET choice_number = $1 WHERE lesson_answer_slot_id = $2")).
		WithArgs(choice, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	slot, err := repo.Update(context.Background(), 42, AnswerSlotUpdate{ChoiceNumber: &choice})
	require.NoError(t, err)
	assert.Nil(t, slot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearByLesson(t *testing.T) {
	db, mock, cleanup := newSlotMock(t)
	defer cleanup()
	repo := NewAnswerSlotRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lesson_answer_slots WHERE lesson_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 6))

	deleted, err := repo.ClearByLesson(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
