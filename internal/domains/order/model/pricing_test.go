package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name                         string
		subtotal, discount           string
		wantTax, wantDisc, wantTotal string
	}{
		{"no discount", "1000", "0", "140", "0", "1190"},
		{"WELCOME10 on 1000", "1000", "100", "140", "100", "1090"},
		{"tax on pre-discount subtotal", "200", "50", "28", "50", "228"},
		{"rounded tax", "333.33", "0", "46.67", "0", "430"},
		{"discount clamped to subtotal", "30", "500", "4.2", "30", "54.2"},
		{"negative discount ignored", "100", "-5", "14", "0", "164"},
		{"empty cart still pays shipping", "0", "0", "0", "0", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(dec(tt.subtotal), DefaultTaxRate, DefaultShippingFee, dec(tt.discount))

			assert.True(t, dec(tt.wantTax).Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, dec(tt.wantDisc).Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, dec(tt.wantTotal).Equal(got.Total), "total %s", got.Total)
			assert.True(t, DefaultShippingFee.Equal(got.Shipping))

			// total = subtotal + tax + shipping − discount
			sum := got.Subtotal.Add(got.Tax).Add(got.Shipping).Sub(got.Discount)
			assert.True(t, sum.Equal(got.Total))
		})
	}
}

func TestCalculateTotals_CustomRates(t *testing.T) {
	got := CalculateTotals(dec("1000"), dec("0"), dec("0"), dec("0"))
	assert.True(t, dec("1000").Equal(got.Total))

	got = CalculateTotals(dec("1000"), dec("0.05"), dec("75"), dec("0"))
	assert.True(t, dec("1125").Equal(got.Total))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(dec("1190"), dec("1190")))
	assert.True(t, WithinTolerance(dec("1190.01"), dec("1190")))
	assert.True(t, WithinTolerance(dec("1189.99"), dec("1190")))
	assert.False(t, WithinTolerance(dec("1190.02"), dec("1190")))
	assert.False(t, WithinTolerance(dec("1000"), dec("1190")))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	pattern := regexp.MustCompile(`^ORD-1700000000123-\d{1,3}$`)

	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, NewOrderNumber(now))
	}
}
