package middleware

import (
	"strings"

	"alupro-backend/internal/shared/response"
	"alupro-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middlewares
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

const (
	MsgUnauthenticated = "يجب تسجيل الدخول للمتابعة"
	MsgInvalidToken    = "جلسة الدخول غير صالحة أو منتهية، يرجى تسجيل الدخول مرة أخرى"
	MsgForbidden       = "ليس لديك صلاحية للوصول إلى هذه الصفحة"
)

// TokenValidator is implemented by *jwt.Manager
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer access token
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract "Bearer <token>"
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, MsgUnauthenticated)
			c.Abort()
			return
		}

		// 2. Verify + parse
		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, MsgInvalidToken)
			c.Abort()
			return
		}

		// 3. Expose identity to handlers
		if !setIdentity(c, claims) {
			response.Unauthorized(c, MsgInvalidToken)
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is present
// and lets anonymous requests through (guest checkout).
func OptionalAuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := tokens.ValidateAccessToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) bool {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}

	c.Set(ContextUserID, userID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
	return true
}

// GetUserID returns the authenticated user id, if any
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetRole returns the authenticated role or ""
func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

// OptionalUserID is GetUserID as a pointer, nil for guests
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &id
}
