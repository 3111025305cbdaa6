package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartModel "alupro-backend/internal/domains/cart/model"
)

// Order is a submitted checkout. Items is a snapshot and never changes
// after creation; only Status (and UpdatedAt) moves.
type Order struct {
	ID          uuid.UUID  `json:"id"`
	OrderNumber string     `json:"order_number"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`

	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	Notes           string `json:"notes,omitempty"`

	Items []cartModel.CartItem `json:"items"`

	// Pricing
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Shipping       decimal.Decimal `json:"shipping"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	PromoCode      *string         `json:"promo_code,omitempty"`
	Total          decimal.Decimal `json:"total"`

	Status      Status    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplyTotals copies a priced breakdown onto the order
func (o *Order) ApplyTotals(t Totals) {
	o.Subtotal = t.Subtotal
	o.Tax = t.Tax
	o.Shipping = t.Shipping
	o.DiscountAmount = t.Discount
	o.Total = t.Total
}

// IsOwnedBy reports whether userID placed the order
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

// StatusHistory is one row of order_status_history
type StatusHistory struct {
	ID         int64      `json:"id"`
	OrderID    uuid.UUID  `json:"order_id"`
	FromStatus *Status    `json:"from_status,omitempty"`
	ToStatus   Status     `json:"to_status"`
	ChangedBy  *uuid.UUID `json:"changed_by,omitempty"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewOrderNumber builds ORD-{unix-ms}-{0..999}.
// Not unique by construction; the orders table enforces it.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), rand.IntN(1000))
}

// =====================================================
// OUTBOX EVENT PAYLOADS
// =====================================================

type CreatedEvent struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      *uuid.UUID      `json:"user_id,omitempty"`
	Total       decimal.Decimal `json:"total"`
	PromoCode   *string         `json:"promo_code,omitempty"`
	ItemCount   int             `json:"item_count"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type StatusChangedEvent struct {
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	FromStatus  Status     `json:"from_status"`
	ToStatus    Status     `json:"to_status"`
	ChangedBy   *uuid.UUID `json:"changed_by,omitempty"`
	ChangedAt   time.Time  `json:"changed_at"`
}
