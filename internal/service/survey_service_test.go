package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type fakeSurveyStore struct {
	surveys []models.Survey
	created *models.Survey
}

func (f *fakeSurveyStore) Create(_ context.Context, survey *models.Survey) error {
	survey.ID = 11
	f.created = survey
	return nil
}

func (f *fakeSurveyStore) ListByTheme(context.Context, int64) ([]models.Survey, error) {
	return f.surveys, nil
}

type fakeStudents struct {
	student *models.Student
}

func (f *fakeStudents) FindStudentByID(context.Context, int64) (*models.Student, error) {
	return f.student, nil
}

func TestSurveyCreate(t *testing.T) {
	store := &fakeSurveyStore{}
	svc := NewSurveyService(store,
		&fakeStudents{student: &models.Student{ID: 5, ClassID: 3}},
		&fakeLessonReader{lesson: &models.Lesson{ID: 7}},
		&fakeContent{exists: true},
		nil, zap.NewNop())

	survey, err := svc.Create(context.Background(), dto.SurveyCreateRequest{
		StudentID:          5,
		LessonID:           int64Ptr(7),
		ThemeID:            int64Ptr(2),
		UnderstandingLevel: intPtr(4),
		StudentComment:     strPtr("it made sense"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), survey.ID)
	assert.Equal(t, models.StatusEnded, survey.SurveyStatus)
	require.NotNil(t, store.created)
	assert.Equal(t, int64(5), store.created.StudentID)
}

func TestSurveyCreateUnknownStudent(t *testing.T) {
	svc := NewSurveyService(&fakeSurveyStore{}, &fakeStudents{}, &fakeLessonReader{}, &fakeContent{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.SurveyCreateRequest{StudentID: 99})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSurveyCreateUnknownTheme(t *testing.T) {
	svc := NewSurveyService(&fakeSurveyStore{},
		&fakeStudents{student: &models.Student{ID: 5}},
		&fakeLessonReader{lesson: &models.Lesson{ID: 7}},
		&fakeContent{exists: false},
		nil, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.SurveyCreateRequest{StudentID: 5, ThemeID: int64Ptr(999)})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSurveyListByTheme(t *testing.T) {
	store := &fakeSurveyStore{surveys: []models.Survey{{ID: 1, StudentID: 5}}}
	svc := NewSurveyService(store, &fakeStudents{}, &fakeLessonReader{}, &fakeContent{exists: true}, nil, zap.NewNop())

	surveys, err := svc.ListByTheme(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, surveys, 1)
}

func TestSurveyListByThemeEmptySlice(t *testing.T) {
	svc := NewSurveyService(&fakeSurveyStore{}, &fakeStudents{}, &fakeLessonReader{}, &fakeContent{exists: true}, nil, zap.NewNop())

	surveys, err := svc.ListByTheme(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, surveys)
	assert.Empty(t, surveys)
}

func strPtr(v string) *string { return &v }
