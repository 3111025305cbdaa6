package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category of an aluminum product
type Category string

const (
	CategoryKitchens Category = "kitchens"
	CategoryDoors    Category = "doors"
	CategoryWindows  Category = "windows"
)

var AllCategories = []Category{CategoryKitchens, CategoryDoors, CategoryWindows}

// Arabic names used by the storefront filters and the admin form.
// Facades are sold under kitchens.
var arabicCategories = map[string]Category{
	"مطابخ":  CategoryKitchens,
	"أبواب":  CategoryDoors,
	"نوافذ":  CategoryWindows,
	"شبابيك": CategoryWindows,
	"واجهات": CategoryKitchens,
}

var categoryLabels = map[Category]string{
	CategoryKitchens: "مطابخ",
	CategoryDoors:    "أبواب",
	CategoryWindows:  "نوافذ",
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryKitchens, CategoryDoors, CategoryWindows:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts the English value or an Arabic name.
// Unknown input is returned lowercased and fails IsValid.
func ParseCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	if c, ok := arabicCategories[raw]; ok {
		return c
	}
	return Category(strings.ToLower(raw))
}

// Product is a catalog entry
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`

	// Pricing
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`

	// Media & content
	Images         []string               `json:"images"`
	Features       []string               `json:"features"`
	Specifications map[string]interface{} `json:"specifications"`

	// Status & metrics
	IsFeatured    bool            `json:"is_featured"`
	IsActive      bool            `json:"is_active"`
	StockQuantity int             `json:"stock_quantity"`
	Rating        decimal.Decimal `json:"rating"`
	ReviewsCount  int             `json:"reviews_count"`

	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HasDiscount is true when discount_price is set and below price
func (p *Product) HasDiscount() bool {
	return p.DiscountPrice != nil &&
		p.DiscountPrice.IsPositive() &&
		p.DiscountPrice.LessThan(p.Price)
}

// EffectivePrice is what the shopper pays per unit
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

// MainImage is the first image, empty when the product has none
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
