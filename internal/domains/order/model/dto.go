package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartModel "alupro-backend/internal/domains/cart/model"
	"alupro-backend/internal/shared/utils"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,18}[0-9]$`)

// =====================================================
// CREATE ORDER REQUEST
// =====================================================

// CreateOrderRequest is the checkout payload. Client side amounts are
// checked against the server computed ones, never trusted.
type CreateOrderRequest struct {
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerAddress string               `json:"customer_address"`
	Notes           string               `json:"notes"`
	Items           []cartModel.CartItem `json:"items"`

	Subtotal       decimal.Decimal  `json:"subtotal"`
	Tax            decimal.Decimal  `json:"tax"`
	Shipping       decimal.Decimal  `json:"shipping"`
	Total          decimal.Decimal  `json:"total"`
	PromoCode      *string          `json:"promo_code,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerName,
			validation.Required.Error("الاسم مطلوب"),
			validation.RuneLength(2, 100).Error("الاسم يجب أن يكون بين 2 و 100 حرف"),
		),
		validation.Field(&r.CustomerEmail,
			validation.Required.Error("البريد الإلكتروني مطلوب"),
			is.EmailFormat.Error("البريد الإلكتروني غير صالح"),
		),
		validation.Field(&r.CustomerPhone,
			validation.Required.Error("رقم الهاتف مطلوب"),
			validation.Match(phonePattern).Error("رقم الهاتف غير صالح"),
		),
		validation.Field(&r.CustomerAddress,
			validation.Required.Error("العنوان مطلوب"),
			validation.RuneLength(5, 500).Error("العنوان يجب أن يكون بين 5 و 500 حرف"),
		),
		validation.Field(&r.Notes, validation.RuneLength(0, 1000)),
		validation.Field(&r.Items,
			validation.Required.Error("السلة فارغة"),
			validation.Length(1, 50).Error("عدد المنتجات يجب أن يكون بين 1 و 50"),
		),
		validation.Field(&r.Subtotal, utils.DecimalMin(decimal.Zero, "الإجمالي الفرعي يجب ألا يكون سالباً")),
		validation.Field(&r.Tax, utils.DecimalMin(decimal.Zero, "الضريبة يجب ألا تكون سالبة")),
		validation.Field(&r.Shipping, utils.DecimalMin(decimal.Zero, "الشحن يجب ألا يكون سالباً")),
		validation.Field(&r.DiscountAmount, utils.DecimalMin(decimal.Zero, "الخصم يجب ألا يكون سالباً")),
	)
}

// HasPromo reports a non-blank promo code
func (r CreateOrderRequest) HasPromo() bool {
	return r.PromoCode != nil && strings.TrimSpace(*r.PromoCode) != ""
}

// =====================================================
// STATUS UPDATE
// =====================================================

type UpdateStatusRequest struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

func (r UpdateStatusRequest) Validate() error {
	statuses := make([]interface{}, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		statuses = append(statuses, s)
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("الحالة مطلوبة"),
			validation.In(statuses...).Error("حالة الطلب غير صالحة"),
		),
		validation.Field(&r.Note, validation.RuneLength(0, 500)),
	)
}

// =====================================================
// LISTING
// =====================================================

type ListFilter struct {
	Status *Status
	UserID *uuid.UUID
	Search string // order number, customer name, email or phone
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// OrderSummary is a list row, items omitted
type OrderSummary struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
	PromoCode     *string         `json:"promo_code,omitempty"`
	Status        Status          `json:"status"`
	StatusLabel   string          `json:"status_label"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToSummary drops the item snapshot
func (o *Order) ToSummary() OrderSummary {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return OrderSummary{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		ItemCount:     count,
		Total:         o.Total,
		PromoCode:     o.PromoCode,
		Status:        o.Status,
		StatusLabel:   o.Status.Label(),
		CreatedAt:     o.CreatedAt,
	}
}

// StatusCount is one bucket of the dashboard breakdown
type StatusCount struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}
