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

type fakeAttendanceStore struct {
	records  []models.Attendance
	upserted *models.Attendance
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, record *models.Attendance) error {
	record.ID = 21
	f.upserted = record
	return nil
}

func (f *fakeAttendanceStore) ListByLesson(context.Context, int64) ([]models.Attendance, error) {
	return f.records, nil
}

type fakeThemeBlocks struct {
	blocks []dto.LessonThemeBlock
}

func (f *fakeThemeBlocks) ThemeBlocks(context.Context, int64) ([]dto.LessonThemeBlock, error) {
	return f.blocks, nil
}

func TestAttendanceUpsert(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store,
		&fakeLessons{lesson: &models.Lesson{ID: 7, ClassID: 3}},
		&fakeThemeBlocks{},
		&fakeStudents{student: &models.Student{ID: 5}},
		nil, nil, zap.NewNop())

	record, err := svc.Upsert(context.Background(), dto.AttendanceUpsertRequest{StudentID: 5, LessonID: 7, Present: true})
	require.NoError(t, err)
	assert.Equal(t, int64(21), record.ID)
	assert.True(t, record.Present)
}

func TestAttendanceUpsertUnknownLesson(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{},
		&fakeLessons{},
		&fakeThemeBlocks{},
		&fakeStudents{student: &models.Student{ID: 5}},
		nil, nil, zap.NewNop())

	_, err := svc.Upsert(context.Background(), dto.AttendanceUpsertRequest{StudentID: 5, LessonID: 999})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestLessonInformationFlipsStatusAndNotifies(t *testing.T) {
	lessons := &fakeLessons{lesson: &models.Lesson{ID: 7, ClassID: 3, LessonName: "quadratics", Status: models.StatusNotStarted}}
	queue := &fakeQueue{}
	svc := NewAttendanceService(&fakeAttendanceStore{}, lessons,
		&fakeThemeBlocks{blocks: []dto.LessonThemeBlock{{RegistrationID: 1, ThemeID: 2, ThemeName: "factoring"}}},
		&fakeStudents{}, queue, nil, zap.NewNop())

	resp, err := svc.LessonInformation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, resp.Status)
	assert.Len(t, resp.Themes, 1)
	assert.Equal(t, []int{models.StatusInProgress}, lessons.updatedStatus)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "lesson_status_updated,7", queue.jobs[0].Payload)
}

func TestLessonInformationAlreadyLive(t *testing.T) {
	lessons := &fakeLessons{lesson: &models.Lesson{ID: 7, Status: models.StatusInProgress}}
	svc := NewAttendanceService(&fakeAttendanceStore{}, lessons, &fakeThemeBlocks{}, &fakeStudents{}, &fakeQueue{}, nil, zap.NewNop())

	resp, err := svc.LessonInformation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, resp.Status)
	assert.Empty(t, lessons.updatedStatus)
	assert.NotNil(t, resp.Themes)
}

func TestLessonInformationNotificationFailureIgnored(t *testing.T) {
	lessons := &fakeLessons{lesson: &models.Lesson{ID: 7, Status: models.StatusNotStarted}}
	svc := NewAttendanceService(&fakeAttendanceStore{}, lessons, &fakeThemeBlocks{}, &fakeStudents{},
		&fakeQueue{err: assert.AnError}, nil, zap.NewNop())

	_, err := svc.LessonInformation(context.Background(), 7)
	require.NoError(t, err)
}
