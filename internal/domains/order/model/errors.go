package model

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"alupro-backend/internal/shared/apperror"
)

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeOrderForbidden       = "ORDER_FORBIDDEN"
	ErrCodeInvalidStatus        = "ORDER_INVALID_STATUS"
	ErrCodeTransitionNotAllowed = "ORDER_TRANSITION_NOT_ALLOWED"
	ErrCodeEmptyOrder           = "ORDER_EMPTY"
	ErrCodeInvalidItem          = "ORDER_INVALID_ITEM"
	ErrCodeProductUnavailable   = "ORDER_PRODUCT_UNAVAILABLE"
	ErrCodePriceChanged         = "ORDER_PRICE_CHANGED"
	ErrCodeTotalMismatch        = "ORDER_TOTAL_MISMATCH"
	ErrCodeCreateFailed         = "ORDER_CREATE_FAILED"
	ErrCodeExportFailed         = "ORDER_EXPORT_FAILED"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrOrderNotFound  = apperror.New(ErrCodeOrderNotFound, "الطلب غير موجود", http.StatusNotFound)
	ErrOrderForbidden = apperror.New(ErrCodeOrderForbidden, "ليس لديك صلاحية لعرض هذا الطلب", http.StatusForbidden)

	ErrInvalidStatus        = apperror.New(ErrCodeInvalidStatus, "حالة الطلب غير صالحة", http.StatusBadRequest)
	ErrTransitionNotAllowed = apperror.New(ErrCodeTransitionNotAllowed, "لا يمكن تغيير حالة الطلب", http.StatusConflict)

	ErrEmptyOrder         = apperror.New(ErrCodeEmptyOrder, "لا يمكن إنشاء طلب بدون منتجات", http.StatusBadRequest)
	ErrInvalidItem        = apperror.New(ErrCodeInvalidItem, "أحد منتجات الطلب غير صالح", http.StatusBadRequest)
	ErrProductUnavailable = apperror.New(ErrCodeProductUnavailable, "أحد المنتجات لم يعد متاحاً", http.StatusBadRequest)
	ErrPriceChanged       = apperror.New(ErrCodePriceChanged, "تغير سعر أحد المنتجات، يرجى تحديث السلة", http.StatusConflict)
	ErrTotalMismatch      = apperror.New(ErrCodeTotalMismatch, "إجمالي الطلب غير مطابق، يرجى تحديث السلة", http.StatusBadRequest)

	ErrCreateFailed = apperror.New(ErrCodeCreateFailed, "حدث خطأ أثناء إنشاء الطلب", http.StatusInternalServerError)
	ErrExportFailed = apperror.New(ErrCodeExportFailed, "حدث خطأ أثناء تصدير الطلبات", http.StatusInternalServerError)
)

// ErrOrderNumberTaken is returned by the repository on a unique violation
// of order_number; the service regenerates and retries.
var ErrOrderNumberTaken = errors.New("order number already exists")

// TransitionNotAllowed names both states in the message
func TransitionNotAllowed(from, to Status) *apperror.AppError {
	return ErrTransitionNotAllowed.
		WithMessage(fmt.Sprintf("لا يمكن تغيير حالة الطلب من \"%s\" إلى \"%s\"", from.Label(), to.Label())).
		WithDetails(map[string]interface{}{"from": from, "to": to})
}

// PriceChanged reports the product whose price moved
func PriceChanged(name string, expected decimal.Decimal) *apperror.AppError {
	return ErrPriceChanged.WithDetails(map[string]interface{}{
		"product":       name,
		"current_price": expected.StringFixed(2),
	})
}

// TotalMismatch carries our computed value for the field the client got wrong
func TotalMismatch(field string, expected decimal.Decimal) *apperror.AppError {
	return ErrTotalMismatch.WithDetails(map[string]interface{}{
		"field":    field,
		"expected": expected.StringFixed(2),
	})
}
