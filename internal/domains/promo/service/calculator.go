package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"alupro-backend/internal/domains/promo/model"
)

var hundred = decimal.NewFromInt(100)

// DiscountCalculator computes the discount for a code that already passed the eligibility checks
type DiscountCalculator struct{}

func NewDiscountCalculator() *DiscountCalculator {
	return &DiscountCalculator{}
}

// Calculate:
//   - percentage: subtotal × value / 100, capped at max_discount_amount when set
//   - fixed:      value
//
// then clamped to the subtotal and rounded to piasters (2 dp)
func (c *DiscountCalculator) Calculate(promo *model.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal

	switch promo.DiscountType {
	case model.DiscountTypePercentage:
		discount = subtotal.Mul(promo.DiscountValue).Div(hundred)
		if promo.MaxDiscountAmount != nil && discount.GreaterThan(*promo.MaxDiscountAmount) {
			discount = *promo.MaxDiscountAmount
		}

	case model.DiscountTypeFixed:
		discount = promo.DiscountValue

	default:
		return decimal.Zero
	}

	// Never discount more than the order is worth
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return discount.Round(2)
}

// Evaluate applies every eligibility rule in order and computes the discount.
// Used for persisted codes and for the offline catalog alike.
//
// Order of checks: active → expiry → usage cap (when enforced) → minimum amount
func Evaluate(promo *model.PromoCode, subtotal decimal.Decimal, now time.Time, enforceMaxUses bool) (*model.ValidationResult, error) {
	if !promo.IsActive {
		return nil, model.ErrPromoInvalid
	}

	if promo.IsExpired(now) {
		return nil, model.ErrPromoExpired
	}

	if enforceMaxUses && promo.IsExhausted() {
		return nil, model.ErrPromoExhausted
	}

	if promo.MinimumAmount != nil && promo.MinimumAmount.IsPositive() && subtotal.LessThan(*promo.MinimumAmount) {
		return nil, model.MinNotMet(*promo.MinimumAmount)
	}

	discount := NewDiscountCalculator().Calculate(promo, subtotal)

	return &model.ValidationResult{
		Code:           promo.Code,
		DiscountAmount: discount,
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue,
		Message:        successMessage(promo),
	}, nil
}

// "تم تطبيق خصم 10%" / "تم تطبيق خصم 500 جنيه"
func successMessage(promo *model.PromoCode) string {
	if promo.DiscountType == model.DiscountTypePercentage {
		return fmt.Sprintf("تم تطبيق خصم %s%%", promo.DiscountValue.String())
	}
	return fmt.Sprintf("تم تطبيق خصم %s جنيه", promo.DiscountValue.String())
}
