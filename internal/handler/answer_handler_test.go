package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-dx/lesson-live-api/internal/dto"
	"github.com/school-dx/lesson-live-api/internal/models"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type fakeAnswerSrv struct {
	slot       *models.AnswerSlot
	updateErr  error
	dashboard  []dto.DashboardAnswer
	byKey      []models.AnswerSlot
	byKeyErr   error
	clearResp  *dto.ClearAnswersResponse
	lastSlotID int64
	lastReq    dto.AnswerUpdateRequest
}

func (f *fakeAnswerSrv) UpdateSlot(_ context.Context, slotID int64, req dto.AnswerUpdateRequest) (*models.AnswerSlot, error) {
	f.lastSlotID = slotID
	f.lastReq = req
	return f.slot, f.updateErr
}

func (f *fakeAnswerSrv) ListByLesson(context.Context, int64) ([]dto.DashboardAnswer, error) {
	return f.dashboard, nil
}

func (f *fakeAnswerSrv) FindByKey(context.Context, dto.RealtimeAnswerFilter) ([]models.AnswerSlot, error) {
	return f.byKey, f.byKeyErr
}

func (f *fakeAnswerSrv) Clear(context.Context, int64) (*dto.ClearAnswersResponse, error) {
	return f.clearResp, nil
}

func TestAnswerHandlerUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAnswerSrv{slot: &models.AnswerSlot{ID: 42}}
	h := NewAnswerHandler(srv)

	body := `{"choice_number": 2}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/answers?lesson_answer_data_id=42", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), srv.lastSlotID)
	require.NotNil(t, srv.lastReq.ChoiceNumber)
	assert.Equal(t, 2, *srv.lastReq.ChoiceNumber)
	assert.Nil(t, srv.lastReq.Status)
}

func TestAnswerHandlerUpdateMissingQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAnswerHandler(&fakeAnswerSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/answers", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswerHandlerUpdateNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAnswerHandler(&fakeAnswerSrv{updateErr: appErrors.ErrNotFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/answers?lesson_answer_data_id=42", strings.NewReader(`{"choice_number": 2}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Update(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswerHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAnswerHandler(&fakeAnswerSrv{dashboard: []dto.DashboardAnswer{{SlotID: 42, StudentID: 5}}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/answers?lesson_id=7", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lesson_answer_slot_id":42`)
}

func TestAnswerHandlerRealtimeRequiresKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAnswerHandler(&fakeAnswerSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/answers/realtime?lesson_theme_id=2&student_id=5", nil)

	h.Realtime(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswerHandlerClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAnswerHandler(&fakeAnswerSrv{clearResp: &dto.ClearAnswersResponse{LessonID: 7, DeletedRows: 6}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/answers?lesson_id=7", nil)

	h.Clear(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted_rows":6`)
}
