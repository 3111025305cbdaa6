package model

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Folder is the object key prefix for the kind
func (k Kind) Folder() string {
	return "media/" + string(k) + "s/"
}

// Upload describes a stored media object
type Upload struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	// Setting updated to point at the upload, when one was requested
	Setting string `json:"setting,omitempty"`
}

const (
	ErrCodeInvalidMedia   = "MEDIA_INVALID_FILE"
	ErrCodeInvalidSetting = "MEDIA_INVALID_SETTING"
	ErrCodeUploadFailed   = "MEDIA_UPLOAD_FAILED"
)

var (
	ErrInvalidMedia   = apperror.New(ErrCodeInvalidMedia, "الملف غير صالح أو غير مدعوم", http.StatusBadRequest)
	ErrInvalidSetting = apperror.New(ErrCodeInvalidSetting, "لا يمكن ربط هذا الملف بالإعداد المطلوب", http.StatusBadRequest)
	ErrUploadFailed   = apperror.New(ErrCodeUploadFailed, "فشل رفع الملف", http.StatusInternalServerError)
)
