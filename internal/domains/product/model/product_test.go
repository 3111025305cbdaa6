package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount *decimal.Decimal
		want     string
	}{
		{"no discount", "12000", nil, "12000"},
		{"lower discount wins", "12000", decPtr("9999.5"), "9999.5"},
		{"discount equal to price ignored", "12000", decPtr("12000"), "12000"},
		{"discount above price ignored", "12000", decPtr("15000"), "12000"},
		{"zero discount ignored", "12000", decPtr("0"), "12000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Price: dec(tt.price), DiscountPrice: tt.discount}
			assert.True(t, dec(tt.want).Equal(p.EffectivePrice()), p.EffectivePrice().String())
		})
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryKitchens, ParseCategory("مطابخ"))
	assert.Equal(t, CategoryKitchens, ParseCategory("واجهات"))
	assert.Equal(t, CategoryDoors, ParseCategory("أبواب"))
	assert.Equal(t, CategoryWindows, ParseCategory("نوافذ"))
	assert.Equal(t, CategoryWindows, ParseCategory("شبابيك"))
	assert.Equal(t, CategoryDoors, ParseCategory(" Doors "))
	assert.False(t, ParseCategory("furniture").IsValid())
	assert.Equal(t, "مطابخ", CategoryKitchens.Label())
}

func TestSortColumn(t *testing.T) {
	col, dir := SortPriceAsc.SortColumn()
	assert.Equal(t, "price", col)
	assert.Equal(t, "ASC", dir)

	col, dir = SortOption("'; DROP TABLE products; --").SortColumn()
	assert.Equal(t, "created_at", col)
	assert.Equal(t, "DESC", dir)
}

func TestProductRequest_Validate(t *testing.T) {
	valid := ProductRequest{
		Name:     "مطبخ ألوميتال مودرن",
		Category: "مطابخ",
		Price:    dec("45000"),
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Category = "furniture"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Price = decimal.Zero
	assert.Error(t, bad.Validate())

	bad = valid
	bad.DiscountPrice = decPtr("50000")
	assert.Error(t, bad.Validate())
}

func TestProductRequest_ToEntity(t *testing.T) {
	req := ProductRequest{
		Name:          "  باب ألوميتال  ",
		Category:      "أبواب",
		Price:         dec("8500.456"),
		DiscountPrice: decPtr("0"),
	}

	p := req.ToEntity(nil)

	assert.Equal(t, "باب ألوميتال", p.Name)
	assert.Equal(t, "باب-ألوميتال", p.Slug)
	assert.Equal(t, CategoryDoors, p.Category)
	assert.Equal(t, "8500.46", p.Price.StringFixed(2))
	assert.Nil(t, p.DiscountPrice)
	assert.True(t, p.IsActive)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Specifications)
}
