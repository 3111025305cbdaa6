package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/domains/contact/model"
	"alupro-backend/internal/domains/contact/service"
)

type stubService struct {
	service.ContactService

	clientIP string
	filter   model.ListFilter
	err      error
}

func (s *stubService) Submit(_ context.Context, clientIP string, req model.CreateMessageRequest) (*model.Message, error) {
	s.clientIP = clientIP
	if s.err != nil {
		return nil, s.err
	}
	return req.ToEntity(), nil
}

func (s *stubService) List(_ context.Context, filter model.ListFilter) ([]*model.Message, int, error) {
	s.filter = filter
	return []*model.Message{}, 0, nil
}

func (s *stubService) MarkRead(context.Context, uuid.UUID) (*model.Message, error) {
	return nil, model.ErrMessageNotFound
}

func setupRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/contact", h.SubmitMessage)
	r.GET("/admin/messages", h.ListMessages)
	r.PATCH("/admin/messages/:id/read", h.MarkRead)
	return r
}

const validBody = `{"name":"سارة","email":"Sara@Example.com","phone":"0100","subject":"استفسار","message":"أريد عرض سعر لمطبخ"}`

func TestSubmitMessage_Created(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "203.0.113.7", svc.clientIP)

	var body struct {
		Data model.Message `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sara@example.com", body.Data.Email)
	assert.False(t, body.Data.IsRead)
}

func TestSubmitMessage_ValidationError(t *testing.T) {
	r := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"س","email":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fields")
}

func TestSubmitMessage_RateLimited(t *testing.T) {
	r := setupRouter(&stubService{err: model.ErrRateLimited})

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrRateLimited.Code)
}

func TestListMessages_UnreadFilter(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/messages?unread=true&page=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.filter.UnreadOnly)
	assert.Equal(t, 2, svc.filter.Page)
}

func TestMarkRead(t *testing.T) {
	r := setupRouter(&stubService{})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/messages/not-a-uuid/read", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/messages/"+uuid.NewString()+"/read", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
