package model

import (
	"net/http"

	"alupro-backend/internal/shared/apperror"
)

const (
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeEmailTaken         = "USER_EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeUserInactive       = "AUTH_USER_INACTIVE"
	ErrCodeInvalidToken       = "AUTH_INVALID_TOKEN"
	ErrCodeTooManyAttempts    = "AUTH_TOO_MANY_ATTEMPTS"
	ErrCodeInvalidRole        = "USER_INVALID_ROLE"
	ErrCodeRoleChangeDenied   = "USER_ROLE_CHANGE_DENIED"
)

var (
	ErrUserNotFound       = apperror.New(ErrCodeUserNotFound, "المستخدم غير موجود", http.StatusNotFound)
	ErrEmailTaken         = apperror.New(ErrCodeEmailTaken, "البريد الإلكتروني مسجل بالفعل", http.StatusConflict)
	ErrInvalidCredentials = apperror.New(ErrCodeInvalidCredentials, "البريد الإلكتروني أو كلمة المرور غير صحيحة", http.StatusUnauthorized)
	ErrUserInactive       = apperror.New(ErrCodeUserInactive, "هذا الحساب موقوف", http.StatusForbidden)
	ErrInvalidToken       = apperror.New(ErrCodeInvalidToken, "جلسة الدخول غير صالحة أو منتهية", http.StatusUnauthorized)
	ErrTooManyAttempts    = apperror.New(ErrCodeTooManyAttempts, "محاولات دخول كثيرة، يرجى المحاولة بعد 15 دقيقة", http.StatusTooManyRequests)
	ErrInvalidRole        = apperror.New(ErrCodeInvalidRole, "الدور غير صالح", http.StatusBadRequest)
	ErrRoleChangeDenied   = apperror.New(ErrCodeRoleChangeDenied, "لا يمكنك تغيير هذا الدور", http.StatusForbidden)
)
