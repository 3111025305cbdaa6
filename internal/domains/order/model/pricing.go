package model

import (
	"github.com/shopspring/decimal"
)

// Default checkout parameters, overridable through config
var (
	DefaultTaxRate     = decimal.RequireFromString("0.14")
	DefaultShippingFee = decimal.NewFromInt(50)

	// TotalsTolerance is how far a client computed amount may drift from ours
	TotalsTolerance = decimal.RequireFromString("0.01")
)

// Totals is the priced breakdown of an order
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount_amount"`
	Total    decimal.Decimal `json:"total"`
}

// CalculateTotals prices an order.
//
//	tax   = subtotal × taxRate   (on the pre-discount subtotal)
//	total = subtotal + tax + shipping − discount
//
// The discount is clamped to [0, subtotal]; nothing else is floored.
// Every amount is rounded to 2 decimal places.
func CalculateTotals(subtotal, taxRate, shipping, discount decimal.Decimal) Totals {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	shipping = shipping.Round(2)
	discount = discount.Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal.Add(tax).Add(shipping).Sub(discount).Round(2),
	}
}

// WithinTolerance reports |a − b| ≤ 0.01
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(TotalsTolerance)
}
