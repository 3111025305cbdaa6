package shared

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// =====================================================
// TASK TYPES
// =====================================================

const (
	TypeSendOrderConfirmation = "email:order_confirmation"
	TypeSendOrderAdminNotice  = "email:order_admin_notice"
	TypeSendOrderStatusUpdate = "email:order_status_update"
	TypeSendContactReply      = "email:contact_reply"
	TypeSendContactNotice     = "email:contact_notice"

	TypeDeactivateExpiredPromos = "promo:deactivate_expired"
)

// Queues, weights are set in cmd/worker
const (
	QueueHigh    = "high"    // customer facing emails
	QueueDefault = "default" // back-office notices
	QueueLow     = "low"     // maintenance jobs
)

// =====================================================
// PAYLOADS
// =====================================================

// Amounts are preformatted decimal strings so the worker never recomputes money

type EmailLineItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type OrderEmailPayload struct {
	OrderID       string          `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Address       string          `json:"address"`
	Items         []EmailLineItem `json:"items"`
	Subtotal      string          `json:"subtotal"`
	Discount      string          `json:"discount"`
	Shipping      string          `json:"shipping"`
	Tax           string          `json:"tax"`
	Total         string          `json:"total"`
	PromoCode     string          `json:"promoCode,omitempty"`
	// Recipient override, used for the back-office notice
	To string `json:"to,omitempty"`
}

type OrderStatusEmailPayload struct {
	OrderNumber   string `json:"orderNumber"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	FromStatus    string `json:"fromStatus"` // Arabic label
	ToStatus      string `json:"toStatus"`   // Arabic label
	Note          string `json:"note,omitempty"`
}

type ContactReplyPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Subject         string `json:"subject"`
	OriginalMessage string `json:"originalMessage"`
	Reply           string `json:"reply"`
}

type ContactNoticePayload struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type DeactivateExpiredPromosPayload struct{}

// MarshalTask builds an asynq task with a JSON payload
func MarshalTask(taskType string, payload interface{}) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}

// TaskEnqueuer is what services need from the queue
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error
}
