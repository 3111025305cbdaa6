package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/domains/promo/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func percentage(value string, maxDiscount *decimal.Decimal) *model.PromoCode {
	return &model.PromoCode{
		Code:              "PCT",
		DiscountType:      model.DiscountTypePercentage,
		DiscountValue:     d(value),
		MaxDiscountAmount: maxDiscount,
		IsActive:          true,
	}
}

func fixed(value string) *model.PromoCode {
	return &model.PromoCode{
		Code:          "FIX",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: d(value),
		IsActive:      true,
	}
}

func TestCalculate_PercentageWithCap(t *testing.T) {
	calc := NewDiscountCalculator()
	promo := percentage("10", dp("500"))

	// discount = min(S*0.10, 500, S)
	tests := []struct {
		subtotal string
		want     string
	}{
		{"0", "0"},
		{"100", "10"},
		{"1000", "100"},
		{"5000", "500"},
		{"12345.67", "500"},
		{"333.33", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			got := calc.Calculate(promo, d(tt.subtotal))
			assert.True(t, d(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestCalculate_FixedClampedToSubtotal(t *testing.T) {
	calc := NewDiscountCalculator()
	promo := fixed("50")

	// discount = min(50, S)
	assert.True(t, d("50").Equal(calc.Calculate(promo, d("200"))))
	assert.True(t, d("30").Equal(calc.Calculate(promo, d("30"))))
	assert.True(t, decimal.Zero.Equal(calc.Calculate(promo, decimal.Zero)))
}

func TestCalculate_FullPercentageNeverExceedsSubtotal(t *testing.T) {
	got := NewDiscountCalculator().Calculate(percentage("100", nil), d("250"))
	assert.True(t, d("250").Equal(got))
}

func TestEvaluate_Scenarios(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	welcome := &model.PromoCode{
		Code:          "WELCOME10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: d("10"),
		MinimumAmount: dp("100"),
		IsActive:      true,
	}

	t.Run("WELCOME10 on 1000", func(t *testing.T) {
		res, err := Evaluate(welcome, d("1000"), now, false)
		require.NoError(t, err)
		assert.True(t, d("100").Equal(res.DiscountAmount))
		assert.Equal(t, "تم تطبيق خصم 10%", res.Message)
		assert.Equal(t, model.DiscountTypePercentage, res.DiscountType)
	})

	t.Run("WELCOME10 on 50 is below minimum", func(t *testing.T) {
		_, err := Evaluate(welcome, d("50"), now, false)
		require.ErrorIs(t, err, model.ErrPromoMinNotMet)

		assert.Contains(t, err.Error(), "يجب أن يكون إجمالي الطلب 100 جنيه على الأقل")
	})

	t.Run("SAVE50 on 200", func(t *testing.T) {
		save := fixed("50")
		save.Code = "SAVE50"
		res, err := Evaluate(save, d("200"), now, false)
		require.NoError(t, err)
		assert.True(t, d("50").Equal(res.DiscountAmount))
		assert.Equal(t, "تم تطبيق خصم 50 جنيه", res.Message)
	})
}

func TestEvaluate_Rejections(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	maxUses := 3

	tests := []struct {
		name    string
		mutate  func(p *model.PromoCode)
		enforce bool
		want    error
	}{
		{"inactive", func(p *model.PromoCode) { p.IsActive = false }, false, model.ErrPromoInvalid},
		{"expired", func(p *model.PromoCode) { p.ExpiresAt = &past }, false, model.ErrPromoExpired},
		{"expired beats minimum", func(p *model.PromoCode) { p.ExpiresAt = &past; p.MinimumAmount = dp("1000000") }, false, model.ErrPromoExpired},
		{"exhausted and enforced", func(p *model.PromoCode) { p.MaxUses = &maxUses; p.UsedCount = 3 }, true, model.ErrPromoExhausted},
		{"minimum above subtotal", func(p *model.PromoCode) { p.MinimumAmount = dp("1000.01") }, false, model.ErrPromoMinNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := percentage("10", nil)
			tt.mutate(p)
			_, err := Evaluate(p, d("1000"), now, tt.enforce)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("exhausted but not enforced", func(t *testing.T) {
		p := percentage("10", nil)
		p.MaxUses = &maxUses
		p.UsedCount = 10
		_, err := Evaluate(p, d("1000"), now, false)
		assert.NoError(t, err)
	})

	t.Run("future expiry is accepted", func(t *testing.T) {
		p := percentage("10", nil)
		p.ExpiresAt = &future
		_, err := Evaluate(p, d("1000"), now, false)
		assert.NoError(t, err)
	})

	t.Run("subtotal equal to minimum is accepted", func(t *testing.T) {
		p := percentage("10", nil)
		p.MinimumAmount = dp("1000")
		_, err := Evaluate(p, d("1000"), now, false)
		assert.NoError(t, err)
	})
}

func TestOfflineCatalog_SameRules(t *testing.T) {
	now := time.Now()

	welcome, ok := lookupOffline("WELCOME10")
	require.True(t, ok)

	res, err := Evaluate(welcome, d("10000"), now, false)
	require.NoError(t, err)
	assert.True(t, d("500").Equal(res.DiscountAmount), "capped at 500")

	_, err = Evaluate(welcome, d("99"), now, false)
	assert.ErrorIs(t, err, model.ErrPromoMinNotMet)

	save, ok := lookupOffline("SAVE500")
	require.True(t, ok)
	_, err = Evaluate(save, d("4999.99"), now, false)
	assert.ErrorIs(t, err, model.ErrPromoMinNotMet)

	_, ok = lookupOffline("UNKNOWN")
	assert.False(t, ok)
}
