package model

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
)

const (
	ErrCodeMessageNotFound = "CONTACT_NOT_FOUND"
	ErrCodeRateLimited     = "CONTACT_RATE_LIMITED"
)

var (
	ErrMessageNotFound = apperror.New(ErrCodeMessageNotFound, "الرسالة غير موجودة", http.StatusNotFound)
	ErrRateLimited     = apperror.New(ErrCodeRateLimited, "لقد أرسلت رسائل كثيرة، يرجى المحاولة لاحقاً", http.StatusTooManyRequests)
)
