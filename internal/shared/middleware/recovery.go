package middleware

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("Panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError,
					apperror.ErrInternal.Code, apperror.ErrInternal.Message, nil)
				c.Abort()
			}
		}()

		c.Next()
	}
}
