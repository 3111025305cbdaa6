package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/shared/utils"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// -------------------------------------------------------------------
// STOREFRONT
// -------------------------------------------------------------------

// ValidateRequest keeps the storefront field names
type ValidateRequest struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cartTotal"`
}

// Code emptiness is reported by the service with its own message
func (r ValidateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CartTotal, utils.DecimalMin(decimal.Zero, "إجمالي السلة يجب ألا يكون سالباً")),
	)
}

type ValidationResult struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountType   DiscountType    `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	Message        string          `json:"message"`
}

// -------------------------------------------------------------------
// ADMIN
// -------------------------------------------------------------------

type CreatePromoRequest struct {
	Code              string           `json:"code"`
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinimumAmount     *decimal.Decimal `json:"minimum_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	ExpiresAt         *time.Time       `json:"expires_at"`
	IsActive          *bool            `json:"is_active"`
	MaxUses           *int             `json:"max_uses"`
	Description       string           `json:"description"`
}

func (r CreatePromoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("الكود مطلوب"),
			validation.Length(3, 50).Error("الكود يجب أن يكون بين 3 و 50 حرفاً"),
			validation.Match(codePattern).Error("الكود يقبل الحروف الإنجليزية والأرقام و - و _ فقط"),
		),
		validation.Field(&r.DiscountType,
			validation.Required.Error("نوع الخصم مطلوب"),
			validation.In(DiscountTypePercentage, DiscountTypeFixed).Error("نوع الخصم غير صالح"),
		),
		validation.Field(&r.DiscountValue, discountValueRules(r.DiscountType)...),
		validation.Field(&r.MinimumAmount, utils.DecimalMin(decimal.Zero, "الحد الأدنى يجب ألا يكون سالباً")),
		validation.Field(&r.MaxDiscountAmount, utils.DecimalPositive("الحد الأقصى للخصم يجب أن يكون أكبر من صفر")),
		validation.Field(&r.MaxUses, validation.Min(1).Error("عدد مرات الاستخدام يجب أن يكون 1 على الأقل")),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

// ToEntity builds a new PromoCode, active unless told otherwise
func (r CreatePromoRequest) ToEntity() *PromoCode {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	p := &PromoCode{
		Code:          NormalizeCode(r.Code),
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MinimumAmount: r.MinimumAmount,
		ExpiresAt:     r.ExpiresAt,
		IsActive:      active,
		MaxUses:       r.MaxUses,
		Description:   r.Description,
	}
	if r.DiscountType == DiscountTypePercentage {
		p.MaxDiscountAmount = r.MaxDiscountAmount
	}
	return p
}

// UpdatePromoRequest is a partial update, nil fields are left untouched.
// Clear* flags remove optional limits.
type UpdatePromoRequest struct {
	Code              *string          `json:"code"`
	DiscountType      *DiscountType    `json:"discount_type"`
	DiscountValue     *decimal.Decimal `json:"discount_value"`
	MinimumAmount     *decimal.Decimal `json:"minimum_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	ExpiresAt         *time.Time       `json:"expires_at"`
	IsActive          *bool            `json:"is_active"`
	MaxUses           *int             `json:"max_uses"`
	Description       *string          `json:"description"`

	ClearMinimumAmount     bool `json:"clear_minimum_amount"`
	ClearMaxDiscountAmount bool `json:"clear_max_discount_amount"`
	ClearExpiresAt         bool `json:"clear_expires_at"`
	ClearMaxUses           bool `json:"clear_max_uses"`
}

func (r UpdatePromoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.NilOrNotEmpty.Error("الكود لا يمكن أن يكون فارغاً"),
			validation.Length(3, 50).Error("الكود يجب أن يكون بين 3 و 50 حرفاً"),
			validation.Match(codePattern).Error("الكود يقبل الحروف الإنجليزية والأرقام و - و _ فقط"),
		),
		validation.Field(&r.DiscountType,
			validation.In(DiscountTypePercentage, DiscountTypeFixed).Error("نوع الخصم غير صالح"),
		),
		validation.Field(&r.DiscountValue, utils.DecimalPositive("قيمة الخصم يجب أن تكون أكبر من صفر")),
		validation.Field(&r.MinimumAmount, utils.DecimalMin(decimal.Zero, "الحد الأدنى يجب ألا يكون سالباً")),
		validation.Field(&r.MaxDiscountAmount, utils.DecimalPositive("الحد الأقصى للخصم يجب أن يكون أكبر من صفر")),
		validation.Field(&r.MaxUses, validation.Min(1).Error("عدد مرات الاستخدام يجب أن يكون 1 على الأقل")),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

// Apply merges the request into p. The merged entity must be re-validated by the caller.
func (r UpdatePromoRequest) Apply(p *PromoCode) {
	if r.Code != nil {
		p.Code = NormalizeCode(*r.Code)
	}
	if r.DiscountType != nil {
		p.DiscountType = *r.DiscountType
	}
	if r.DiscountValue != nil {
		p.DiscountValue = *r.DiscountValue
	}
	if r.MinimumAmount != nil {
		p.MinimumAmount = r.MinimumAmount
	}
	if r.MaxDiscountAmount != nil {
		p.MaxDiscountAmount = r.MaxDiscountAmount
	}
	if r.ExpiresAt != nil {
		p.ExpiresAt = r.ExpiresAt
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.MaxUses != nil {
		p.MaxUses = r.MaxUses
	}
	if r.Description != nil {
		p.Description = *r.Description
	}

	if r.ClearMinimumAmount {
		p.MinimumAmount = nil
	}
	if r.ClearMaxDiscountAmount || p.DiscountType == DiscountTypeFixed {
		p.MaxDiscountAmount = nil
	}
	if r.ClearExpiresAt {
		p.ExpiresAt = nil
	}
	if r.ClearMaxUses {
		p.MaxUses = nil
	}
}

// ValidateEntity re-checks cross-field rules after a partial update
func ValidateEntity(p *PromoCode) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.DiscountValue, discountValueRules(p.DiscountType)...),
	)
}

func discountValueRules(t DiscountType) []validation.Rule {
	rules := []validation.Rule{
		utils.DecimalPositive("قيمة الخصم يجب أن تكون أكبر من صفر"),
	}
	if t == DiscountTypePercentage {
		rules = append(rules, utils.DecimalMax(decimal.NewFromInt(100), "نسبة الخصم لا يمكن أن تتجاوز 100%"))
	}
	return rules
}

type ListFilter struct {
	Active *bool
	Search string
	Page   int
	Limit  int
}
