package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/models"
	"github.com/school-dx/lesson-live-api/internal/repository"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type fakeGrades struct {
	raw        []repository.RawDataRow
	classIDs   []int64
	studentIDs []int64
	summary    []repository.SummaryRow
	comments   []repository.CommentRow
}

func (f *fakeGrades) RawData(context.Context, int64) ([]repository.RawDataRow, error) {
	return f.raw, nil
}

func (f *fakeGrades) ClassIDs(context.Context, int, int) ([]int64, error) {
	return f.classIDs, nil
}

func (f *fakeGrades) StudentIDs(context.Context, []int64) ([]int64, error) {
	return f.studentIDs, nil
}

func (f *fakeGrades) Summary(context.Context, []int64) ([]repository.SummaryRow, error) {
	return f.summary, nil
}

func (f *fakeGrades) Comments(context.Context, int64) ([]repository.CommentRow, error) {
	return f.comments, nil
}

type memoryCache struct {
	values map[string][]byte
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	c.sets++
	return nil
}

func TestGradeSummaryRates(t *testing.T) {
	grades := &fakeGrades{
		classIDs:   []int64{3},
		studentIDs: []int64{5, 6, 7},
		summary: []repository.SummaryRow{
			{QuestionID: 31, QuestionLabel: "Q1", TotalAnswers: 1, CorrectAnswers: 1},
			{QuestionID: 32, QuestionLabel: "Q2", TotalAnswers: 3, CorrectAnswers: 1},
		},
	}
	svc := NewGradeService(grades, &fakeLessonReader{}, nil, 0, zap.NewNop())

	resp, err := svc.Summary(context.Background(), 2024, 2)
	require.NoError(t, err)
	require.Len(t, resp.Summary, 2)
	assert.Equal(t, 100.0, resp.Summary[0].CorrectRate)
	assert.Equal(t, 33.3, resp.Summary[1].CorrectRate)
}

func TestGradeSummaryNoClasses(t *testing.T) {
	svc := NewGradeService(&fakeGrades{}, &fakeLessonReader{}, nil, 0, zap.NewNop())

	_, err := svc.Summary(context.Background(), 2024, 2)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGradeSummaryNoStudents(t *testing.T) {
	svc := NewGradeService(&fakeGrades{classIDs: []int64{3}}, &fakeLessonReader{}, nil, 0, zap.NewNop())

	_, err := svc.Summary(context.Background(), 2024, 2)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGradeSummaryCached(t *testing.T) {
	grades := &fakeGrades{
		classIDs:   []int64{3},
		studentIDs: []int64{5},
		summary:    []repository.SummaryRow{{QuestionID: 31, QuestionLabel: "Q1", TotalAnswers: 1, CorrectAnswers: 1}},
	}
	cache := newMemoryCache()
	svc := NewGradeService(grades, &fakeLessonReader{}, cache, time.Minute, zap.NewNop())

	first, err := svc.Summary(context.Background(), 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	grades.classIDs = nil // a cold path would now 404
	second, err := svc.Summary(context.Background(), 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestRawDataChoiceLabels(t *testing.T) {
	choice := 2
	correct := true
	grades := &fakeGrades{raw: []repository.RawDataRow{{
		StudentID:     5,
		StudentName:   "Sato",
		ClassID:       3,
		QuestionID:    31,
		QuestionLabel: "Q1",
		CorrectChoice: 2,
		ChoiceNumber:  &choice,
		Correctness:   &correct,
	}}}
	svc := NewGradeService(grades, &fakeLessonReader{lesson: &models.Lesson{ID: 7}}, nil, 0, zap.NewNop())

	items, err := svc.RawData(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Answer.SelectedChoice)
	assert.Equal(t, "B", *items[0].Answer.SelectedChoice)
	assert.Equal(t, "B", items[0].Question.CorrectChoice)
	require.NotNil(t, items[0].Answer.IsCorrect)
	assert.True(t, *items[0].Answer.IsCorrect)
}

func TestRawDataMissingLesson(t *testing.T) {
	svc := NewGradeService(&fakeGrades{}, &fakeLessonReader{}, nil, 0, zap.NewNop())

	_, err := svc.RawData(context.Background(), 7)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGradeExportCSV(t *testing.T) {
	choice := 2
	correct := true
	grades := &fakeGrades{raw: []repository.RawDataRow{{
		StudentID:     5,
		StudentName:   "Sato",
		QuestionLabel: "Q1",
		CorrectChoice: 2,
		ChoiceNumber:  &choice,
		Correctness:   &correct,
	}}}
	svc := NewGradeService(grades, &fakeLessonReader{lesson: &models.Lesson{ID: 7}}, nil, 0, zap.NewNop())

	result, err := svc.Export(context.Background(), 7, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "lesson_7_grades.csv", result.FileName)

	content := string(result.Content)
	assert.True(t, strings.HasPrefix(content, "student_id,student_name,question_label,selected_choice,correct_choice,is_correct"))
	assert.Contains(t, content, "5,Sato,Q1,B,B,true")
}

func TestGradeExportUnknownFormat(t *testing.T) {
	svc := NewGradeService(&fakeGrades{}, &fakeLessonReader{lesson: &models.Lesson{ID: 7}}, nil, 0, zap.NewNop())

	_, err := svc.Export(context.Background(), 7, "xlsx")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestGradeComments(t *testing.T) {
	grades := &fakeGrades{comments: []repository.CommentRow{{StudentID: 5, StudentName: "Sato", CommentText: "fun"}}}
	svc := NewGradeService(grades, &fakeLessonReader{lesson: &models.Lesson{ID: 7}}, nil, 0, zap.NewNop())

	resp, err := svc.Comments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "fun", resp.Comments[0].CommentText)
}
