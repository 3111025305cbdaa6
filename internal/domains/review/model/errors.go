package model

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
)

const (
	ErrCodeReviewNotFound = "REVIEW_NOT_FOUND"
)

var (
	ErrReviewNotFound = apperror.New(ErrCodeReviewNotFound, "التقييم غير موجود", http.StatusNotFound)
)
