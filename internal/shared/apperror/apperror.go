package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a business error carrying a stable code, a user facing
// (Arabic) message and the HTTP status the handlers should answer with.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Err        error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel AppErrors work with errors.Is
// even after WithDetails/Wrap produced a copy.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap returns a copy of e with the underlying cause attached
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithDetails returns a copy of e with extra structured details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with a different message
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// As extracts an *AppError from err
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Common errors shared by all domains
var (
	ErrValidation = New("VAL_INVALID_INPUT", "البيانات المدخلة غير صالحة", http.StatusBadRequest)
	ErrInvalidID  = New("VAL_INVALID_ID", "المعرف غير صالح", http.StatusBadRequest)
	ErrInternal   = New("SYS_INTERNAL_ERROR", "حدث خطأ غير متوقع، يرجى المحاولة لاحقاً", http.StatusInternalServerError)
)

// Validation wraps an ozzo validation error into ErrValidation, exposing
// field errors as details.
func Validation(err error) *AppError {
	appErr := ErrValidation.Wrap(err)
	appErr.Details = map[string]interface{}{"fields": err}
	return appErr
}
