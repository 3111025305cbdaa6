package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alupro-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(tokens TokenValidator, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders", AuthMiddleware(tokens), RequireRoles(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/optional", OptionalAuthMiddleware(tokens), func(c *gin.Context) {
		if id, ok := GetUserID(c); ok {
			c.String(http.StatusOK, id.String())
			return
		}
		c.String(http.StatusOK, "guest")
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoles(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, time.Hour)
	r := setupRouter(manager, "super_admin", "admin")

	adminToken, err := manager.GenerateAccessToken(uuid.NewString(), "a@alupro.com", "admin")
	require.NoError(t, err)
	editorToken, err := manager.GenerateAccessToken(uuid.NewString(), "e@alupro.com", "editor")
	require.NoError(t, err)

	t.Run("missing token is 401", func(t *testing.T) {
		w := doRequest(r, "/admin/orders", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), MsgUnauthenticated)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		w := doRequest(r, "/admin/orders", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("editor is 403 on orders", func(t *testing.T) {
		w := doRequest(r, "/admin/orders", editorToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), MsgForbidden)
	})

	t.Run("admin passes", func(t *testing.T) {
		w := doRequest(r, "/admin/orders", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, time.Hour)
	r := setupRouter(manager)

	w := doRequest(r, "/optional", "")
	assert.Equal(t, "guest", w.Body.String())

	w = doRequest(r, "/optional", "broken")
	assert.Equal(t, "guest", w.Body.String())

	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID.String(), "u@alupro.com", "user")
	require.NoError(t, err)
	w = doRequest(r, "/optional", token)
	assert.Equal(t, userID.String(), w.Body.String())
}
