package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// PromoCode maps the promo_codes table
type PromoCode struct {
	ID                uuid.UUID        `json:"id"`
	Code              string           `json:"code"` // stored uppercase
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinimumAmount     *decimal.Decimal `json:"minimum_amount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"` // percentage only
	ExpiresAt         *time.Time       `json:"expires_at,omitempty"`
	IsActive          bool             `json:"is_active"`
	UsedCount         int              `json:"used_count"`
	MaxUses           *int             `json:"max_uses,omitempty"`
	Description       string           `json:"description"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// IsExpired: expires_at strictly before now
func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// IsExhausted reports whether max_uses has been reached
func (p *PromoCode) IsExhausted() bool {
	return p.MaxUses != nil && p.UsedCount >= *p.MaxUses
}

// NormalizeCode trims and uppercases, codes are matched case-insensitively
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
