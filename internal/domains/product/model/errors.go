package model

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
)

const (
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeProductSlugTaken    = "PRODUCT_SLUG_TAKEN"
	ErrCodeProductInvalidImage = "PRODUCT_INVALID_IMAGE"
	ErrCodeProductUpload       = "PRODUCT_UPLOAD_FAILED"
)

var (
	ErrProductNotFound = apperror.New(ErrCodeProductNotFound, "المنتج غير موجود", http.StatusNotFound)
	ErrSlugTaken       = apperror.New(ErrCodeProductSlugTaken, "الرابط المختصر مستخدم لمنتج آخر", http.StatusConflict)
	ErrInvalidImage    = apperror.New(ErrCodeProductInvalidImage, "الصورة غير صالحة، يسمح بـ JPG و PNG حتى 5 ميجابايت", http.StatusBadRequest)
	ErrUploadFailed    = apperror.New(ErrCodeProductUpload, "فشل رفع الصورة", http.StatusInternalServerError)
)
