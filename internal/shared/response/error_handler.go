package response

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandleError maps service errors to the envelope.
// *apperror.AppError → its own status/code/message
// anything else      → 500 with a generic message, cause is logged not leaked
func HandleError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}

		var details interface{}
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		ErrorResponse(c, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("unhandled error")

	ErrorResponse(c, http.StatusInternalServerError, apperror.ErrInternal.Code, apperror.ErrInternal.Message, nil)
}
