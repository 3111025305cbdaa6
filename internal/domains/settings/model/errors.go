package model

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
)

const ErrCodeInvalidSettings = "SETTINGS_INVALID"

var ErrInvalidSettings = apperror.New(ErrCodeInvalidSettings, "إعدادات غير صالحة", http.StatusBadRequest)
