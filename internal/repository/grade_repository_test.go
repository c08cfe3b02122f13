package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGradeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestGradeSummaryExcludesUnanswered(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("choice_number IS NOT NULL").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"lesson_question_id", "question_label", "total_answers", "correct_answers"}).
			AddRow(31, "Q1", 1, 1))

	rows, err := repo.Summary(context.Background(), []int64{5, 6})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TotalAnswers)
	assert.Equal(t, 1, rows[0].CorrectAnswers)
}

func TestGradeClassIDs(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("SELECT class_id FROM classes WHERE academic_year").
		WithArgs(2024, 2).
		WillReturnRows(sqlmock.NewRows([]string{"class_id"}).AddRow(3).AddRow(4))

	ids, err := repo.ClassIDs(context.Background(), 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids)
}

func TestGradeRawDataJoins(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("FROM lesson_answer_slots s").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"student_id", "student_name", "class_id", "lesson_question_id", "question_label",
			"correct_choice", "choice_number", "answer_correctness", "answer_start_unix",
			"answer_end_unix", "answer_start_timestamp", "part_name", "chapter_name", "unit_name",
			"lesson_theme_name",
		}).AddRow(5, "Sato", 3, 31, "Q1", 2, 2, true, nil, nil, nil, nil, nil, nil, nil))

	rows, err := repo.RawData(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sato", rows[0].StudentName)
	require.NotNil(t, rows[0].Correctness)
	assert.True(t, *rows[0].Correctness)
}

func TestGradeComments(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("FROM lesson_registrations reg").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "name", "student_comment"}).
			AddRow(5, "Sato", "that was fun"))

	rows, err := repo.Comments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "that was fun", rows[0].CommentText)
}
