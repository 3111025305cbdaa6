package model

import (
	"github.com/shopspring/decimal"

	orderModel "alupro-backend/internal/domains/order/model"
)

// Summary feeds the admin home screen
type Summary struct {
	TotalOrders    int                       `json:"total_orders"`
	OrdersByStatus []orderModel.StatusCount  `json:"orders_by_status"`
	Revenue        decimal.Decimal           `json:"revenue"`
	UnreadMessages int                       `json:"unread_messages"`
	PendingReviews int                       `json:"pending_reviews"`
	ActiveProducts int                       `json:"active_products"`
	RecentOrders   []orderModel.OrderSummary `json:"recent_orders"`
}
