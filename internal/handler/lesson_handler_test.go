package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-dx/lesson-live-api/internal/dto"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
	"github.com/school-dx/lesson-live-api/pkg/response"
)

type fakeLessonSrv struct {
	startResp *dto.StartLessonResponse
	startErr  error
	endResp   *dto.LifecycleResponse
	countResp *dto.QuestionCountResponse
	exercise  *dto.ExerciseResponse
}

func (f *fakeLessonSrv) StartLesson(context.Context, int64) (*dto.StartLessonResponse, error) {
	return f.startResp, f.startErr
}

func (f *fakeLessonSrv) EndLesson(context.Context, int64) (*dto.LifecycleResponse, error) {
	return f.endResp, nil
}

func (f *fakeLessonSrv) StartExercise(context.Context, int64, int64) (*dto.ExerciseResponse, error) {
	return f.exercise, nil
}

func (f *fakeLessonSrv) EndExercise(context.Context, int64, int64) (*dto.ExerciseResponse, error) {
	return f.exercise, nil
}

func (f *fakeLessonSrv) QuestionCount(context.Context, int64) (*dto.QuestionCountResponse, error) {
	return f.countResp, nil
}

func TestLessonHandlerStart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLessonHandler(&fakeLessonSrv{startResp: &dto.StartLessonResponse{LessonID: 7, Status: 2, CreatedSlots: 6}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/lessons/7/start", nil)
	c.Params = gin.Params{{Key: "lesson_id", Value: "7"}}

	h.Start(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(6), data["created_slots"])
}

func TestLessonHandlerStartBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLessonHandler(&fakeLessonSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/lessons/abc/start", nil)
	c.Params = gin.Params{{Key: "lesson_id", Value: "abc"}}

	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLessonHandlerStartNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLessonHandler(&fakeLessonSrv{startErr: appErrors.ErrNotFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/lessons/99/start", nil)
	c.Params = gin.Params{{Key: "lesson_id", Value: "99"}}

	h.Start(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLessonHandlerExercise(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLessonHandler(&fakeLessonSrv{exercise: &dto.ExerciseResponse{LessonID: 7, ThemeID: 2, ExerciseStatus: 2}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/lesson_themes/2/start_exercise?lesson_id=7", nil)
	c.Params = gin.Params{{Key: "theme_id", Value: "2"}}

	h.StartExercise(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLessonHandlerQuestionCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLessonHandler(&fakeLessonSrv{countResp: &dto.QuestionCountResponse{ThemeID: 2, QuestionCount: 4}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/lesson_themes/2/questions/count", nil)
	c.Params = gin.Params{{Key: "theme_id", Value: "2"}}

	h.QuestionCount(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(4), data["question_count"])
}
