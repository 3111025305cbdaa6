package middleware

import (
	"alupro-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets the request through only when the role set by
// AuthMiddleware is one of allowed. Must be registered after AuthMiddleware.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, authenticated := GetUserID(c); !authenticated {
			response.Unauthorized(c, MsgUnauthenticated)
			c.Abort()
			return
		}

		if _, ok := set[GetRole(c)]; !ok {
			response.Forbidden(c, MsgForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
