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

	"alupro-backend/internal/domains/settings/model"
)

type stubService struct {
	current model.SiteSettings
	updated model.UpdateRequest
}

func (s *stubService) Get(context.Context) model.SiteSettings {
	return s.current
}

func (s *stubService) Update(_ context.Context, req model.UpdateRequest, _ *uuid.UUID) (model.SiteSettings, error) {
	s.updated = req
	if name, ok := req[model.KeySiteName].(string); ok {
		s.current.SiteName = name
	}
	return s.current, nil
}

func setupRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.GET("/settings", h.GetSettings)
	r.PUT("/admin/settings", h.UpdateSettings)
	return r
}

func put(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/admin/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSettings_ReturnsResolvedSettings(t *testing.T) {
	r := setupRouter(&stubService{current: model.Defaults()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.Defaults().PrimaryColor, body.Data[model.KeyPrimaryColor])
}

func TestUpdateSettings(t *testing.T) {
	t.Run("known keys are saved", func(t *testing.T) {
		svc := &stubService{current: model.Defaults()}
		w := put(setupRouter(svc), `{"site_name":"ألومنيوم برو","primary_color":"#111111"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ألومنيوم برو", svc.current.SiteName)
		assert.Len(t, svc.updated, 2)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		svc := &stubService{}
		w := put(setupRouter(svc), `{"not_a_setting":"x"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), model.ErrCodeInvalidSettings)
		assert.Nil(t, svc.updated)
	})

	t.Run("color without hash is rejected", func(t *testing.T) {
		w := put(setupRouter(&stubService{}), `{"secondary_color":"1e40af"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := put(setupRouter(&stubService{}), `{"site_name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
