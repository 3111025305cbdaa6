package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"alupro-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func TestHandleError_AppError(t *testing.T) {
	c, w := newContext()

	notFound := apperror.New("PRODUCT_NOT_FOUND", "المنتج غير موجود", http.StatusNotFound)
	HandleError(c, fmt.Errorf("service: %w", notFound))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "المنتج غير موجود", body.Message)
}

func TestHandleError_UnknownErrorIsMasked(t *testing.T) {
	c, w := newContext()

	HandleError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestAppError_IsMatchesOnCode(t *testing.T) {
	base := apperror.New("X", "x", http.StatusBadRequest)
	wrapped := base.Wrap(errors.New("cause")).WithDetails(map[string]interface{}{"a": 1})

	assert.True(t, errors.Is(wrapped, base))
	assert.False(t, errors.Is(wrapped, apperror.ErrInternal))
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(2, 20, 41)
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, 41, m.Total)
}

func TestErrorResponse_Envelope(t *testing.T) {
	c, w := newContext()

	ErrorResponse(c, http.StatusConflict, "ORDER_PRICE_CHANGED", "تغير سعر المنتج", map[string]interface{}{"product": "x"})

	assert.Equal(t, http.StatusConflict, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "تغير سعر المنتج", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "ORDER_PRICE_CHANGED", body.Error.Code)
	assert.Equal(t, "تغير سعر المنتج", body.Error.Message)
	assert.NotNil(t, body.Error.Details)
}

func TestShortcutErrors(t *testing.T) {
	tests := []struct {
		name   string
		write  func(c *gin.Context)
		status int
		code   string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "x", nil) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "يجب تسجيل الدخول") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "ليس لديك صلاحية") }, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			tt.write(c)

			assert.Equal(t, tt.status, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}
