package model

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"alupro-backend/internal/shared/apperror"
)

const (
	// Validation (storefront)
	ErrCodePromoRequired  = "PROMO_CODE_REQUIRED"
	ErrCodePromoInvalid   = "PROMO_CODE_INVALID"
	ErrCodePromoExpired   = "PROMO_CODE_EXPIRED"
	ErrCodePromoMinNotMet = "PROMO_MIN_NOT_MET"
	ErrCodePromoExhausted = "PROMO_CODE_EXHAUSTED"

	// Admin
	ErrCodePromoNotFound  = "PROMO_NOT_FOUND"
	ErrCodePromoDuplicate = "PROMO_DUPLICATE_CODE"

	// System
	ErrCodePromoBackend = "PROMO_VALIDATION_FAILED"
)

var (
	ErrPromoRequired  = apperror.New(ErrCodePromoRequired, "كود البرومو مطلوب", http.StatusBadRequest)
	ErrPromoInvalid   = apperror.New(ErrCodePromoInvalid, "كود البرومو غير صالح أو انتهت صلاحيته", http.StatusBadRequest)
	ErrPromoExpired   = apperror.New(ErrCodePromoExpired, "انتهت صلاحية كود البرومو", http.StatusBadRequest)
	ErrPromoMinNotMet = apperror.New(ErrCodePromoMinNotMet, "لم يتم الوصول إلى الحد الأدنى للطلب", http.StatusBadRequest)
	ErrPromoExhausted = apperror.New(ErrCodePromoExhausted, "تم استنفاد عدد مرات استخدام كود البرومو", http.StatusBadRequest)

	ErrPromoNotFound  = apperror.New(ErrCodePromoNotFound, "كود البرومو غير موجود", http.StatusNotFound)
	ErrPromoDuplicate = apperror.New(ErrCodePromoDuplicate, "كود البرومو مستخدم بالفعل", http.StatusConflict)

	ErrPromoBackend = apperror.New(ErrCodePromoBackend, "حدث خطأ أثناء التحقق من كود البرومو", http.StatusInternalServerError)
)

// MinNotMet carries the required minimum in the message and details
func MinNotMet(minimum decimal.Decimal) *apperror.AppError {
	return ErrPromoMinNotMet.
		WithMessage(fmt.Sprintf("يجب أن يكون إجمالي الطلب %s جنيه على الأقل", minimum.String())).
		WithDetails(map[string]interface{}{"minimum_amount": minimum.String()})
}
