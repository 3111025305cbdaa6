package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/shared/utils"
)

// -------------------------------------------------------------------
// LISTING
// -------------------------------------------------------------------

// SortOption is the public "sort" query value
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortRating    SortOption = "rating"
	SortName      SortOption = "name"
)

// SortColumn maps a sort option to (column, direction); unknown → newest
func (s SortOption) SortColumn() (string, string) {
	switch s {
	case SortPriceAsc:
		return "price", "ASC"
	case SortPriceDesc:
		return "price", "DESC"
	case SortRating:
		return "rating", "DESC"
	case SortName:
		return "name", "ASC"
	default:
		return "created_at", "DESC"
	}
}

type ListFilter struct {
	Category        *Category
	Featured        *bool
	Search          string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Sort            SortOption
	IncludeInactive bool // admin listing
	Page            int
	Limit           int
}

// -------------------------------------------------------------------
// ADMIN WRITE
// -------------------------------------------------------------------

// ProductRequest is used for create and full update.
// Category accepts the English value or the Arabic name.
type ProductRequest struct {
	Name           string                 `json:"name"`
	Slug           string                 `json:"slug"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	Price          decimal.Decimal        `json:"price"`
	DiscountPrice  *decimal.Decimal       `json:"discount_price"`
	Images         []string               `json:"images"`
	Features       []string               `json:"features"`
	Specifications map[string]interface{} `json:"specifications"`
	IsFeatured     bool                   `json:"is_featured"`
	IsActive       *bool                  `json:"is_active"`
	StockQuantity  int                    `json:"stock_quantity"`
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("اسم المنتج مطلوب"),
			validation.Length(2, 200).Error("اسم المنتج يجب أن يكون بين 2 و 200 حرف"),
		),
		validation.Field(&r.Slug, validation.Length(0, 220)),
		validation.Field(&r.Category,
			validation.Required.Error("الفئة مطلوبة"),
			validation.By(func(interface{}) error {
				if !ParseCategory(r.Category).IsValid() {
					return validation.NewError("category_invalid", "الفئة غير صالحة")
				}
				return nil
			}),
		),
		validation.Field(&r.Price, utils.DecimalPositive("السعر يجب أن يكون أكبر من صفر")),
		validation.Field(&r.DiscountPrice,
			utils.DecimalMin(decimal.Zero, "سعر الخصم يجب ألا يكون سالباً"),
			utils.DecimalMax(r.Price, "سعر الخصم يجب أن يكون أقل من السعر"),
		),
		validation.Field(&r.StockQuantity, validation.Min(0).Error("الكمية يجب ألا تكون سالبة")),
		validation.Field(&r.Images, validation.Length(0, 20)),
	)
}

// ToEntity builds the product; slug falls back to one generated from the name
func (r ProductRequest) ToEntity(createdBy *uuid.UUID) *Product {
	p := &Product{
		ID:        uuid.New(),
		CreatedBy: createdBy,
		IsActive:  true,
	}
	r.Apply(p)
	return p
}

// Apply overwrites every editable field of p
func (r ProductRequest) Apply(p *Product) {
	p.Name = strings.TrimSpace(r.Name)
	p.Slug = utils.GenerateSlug(r.Slug)
	if p.Slug == "" {
		p.Slug = utils.GenerateSlug(p.Name)
	}
	p.Description = strings.TrimSpace(r.Description)
	p.Category = ParseCategory(r.Category)
	p.Price = r.Price.Round(2)
	p.DiscountPrice = nil
	if r.DiscountPrice != nil && r.DiscountPrice.IsPositive() {
		dp := r.DiscountPrice.Round(2)
		p.DiscountPrice = &dp
	}
	p.Images = nonNil(r.Images)
	p.Features = nonNil(r.Features)
	p.Specifications = r.Specifications
	if p.Specifications == nil {
		p.Specifications = map[string]interface{}{}
	}
	p.IsFeatured = r.IsFeatured
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.StockQuantity = r.StockQuantity
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ImageUploadResult lists the stored variants of one upload
type ImageUploadResult struct {
	URL      string            `json:"url"` // large variant, appended to images
	Variants map[string]string `json:"variants"`
	Product  *Product          `json:"product"`
}
