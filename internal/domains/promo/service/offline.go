package service

import (
	"github.com/shopspring/decimal"

	"alupro-backend/internal/domains/promo/model"
)

// offlineCatalog is consulted only when promo_codes cannot be reached and
// PROMO_OFFLINE_FALLBACK is on. Entries go through Evaluate like any other code.
var offlineCatalog = map[string]model.PromoCode{
	"WELCOME10": {
		Code:              "WELCOME10",
		DiscountType:      model.DiscountTypePercentage,
		DiscountValue:     decimal.NewFromInt(10),
		MinimumAmount:     decimalPtr(100),
		MaxDiscountAmount: decimalPtr(500),
		IsActive:          true,
	},
	"SAVE500": {
		Code:          "SAVE500",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(500),
		MinimumAmount: decimalPtr(5000),
		IsActive:      true,
	},
}

// lookupOffline returns a copy so callers cannot mutate the catalog
func lookupOffline(code string) (*model.PromoCode, bool) {
	p, ok := offlineCatalog[code]
	if !ok {
		return nil, false
	}
	return &p, true
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
