package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"alupro-backend/internal/infrastructure/email"
	"alupro-backend/internal/shared"
)

// decode unmarshals a task payload, a malformed payload will never succeed so retries are skipped
func decode(task *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		log.Error().Err(err).Str("type", task.Type()).Msg("Failed to unmarshal email payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	return nil
}

func send(ctx context.Context, svc email.EmailService, taskType string, req email.EmailRequest, buildErr error) error {
	if buildErr != nil {
		return fmt.Errorf("build %s email: %v: %w", taskType, buildErr, asynq.SkipRetry)
	}

	if err := svc.SendEmail(ctx, req); err != nil {
		log.Error().Err(err).Str("type", taskType).Strs("to", req.To).Msg("Failed to send email")
		return fmt.Errorf("send %s email: %w", taskType, err)
	}

	log.Info().Str("type", taskType).Strs("to", req.To).Msg("Email sent successfully")
	return nil
}

// ============================================
// Order Confirmation Handler
// ============================================

type OrderConfirmationHandler struct {
	emailService email.EmailService
	siteURL      string
}

func NewOrderConfirmationHandler(emailService email.EmailService, siteURL string) *OrderConfirmationHandler {
	return &OrderConfirmationHandler{emailService: emailService, siteURL: siteURL}
}

func (h *OrderConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderEmailPayload
	if err := decode(task, &payload); err != nil {
		return err
	}

	log.Info().Str("order_number", payload.OrderNumber).Msg("Processing order confirmation email")

	req, err := email.OrderConfirmationEmail(payload, h.siteURL)
	return send(ctx, h.emailService, task.Type(), req, err)
}

// ============================================
// Order Admin Notice Handler
// ============================================

type OrderAdminNoticeHandler struct {
	emailService email.EmailService
}

func NewOrderAdminNoticeHandler(emailService email.EmailService) *OrderAdminNoticeHandler {
	return &OrderAdminNoticeHandler{emailService: emailService}
}

func (h *OrderAdminNoticeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderEmailPayload
	if err := decode(task, &payload); err != nil {
		return err
	}

	req, err := email.OrderAdminNoticeEmail(payload)
	return send(ctx, h.emailService, task.Type(), req, err)
}

// ============================================
// Order Status Update Handler
// ============================================

type OrderStatusUpdateHandler struct {
	emailService email.EmailService
}

func NewOrderStatusUpdateHandler(emailService email.EmailService) *OrderStatusUpdateHandler {
	return &OrderStatusUpdateHandler{emailService: emailService}
}

func (h *OrderStatusUpdateHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderStatusEmailPayload
	if err := decode(task, &payload); err != nil {
		return err
	}

	log.Info().
		Str("order_number", payload.OrderNumber).
		Str("to_status", payload.ToStatus).
		Msg("Processing order status email")

	req, err := email.OrderStatusEmail(payload)
	return send(ctx, h.emailService, task.Type(), req, err)
}

// ============================================
// Contact Handlers
// ============================================

type ContactReplyHandler struct {
	emailService email.EmailService
}

func NewContactReplyHandler(emailService email.EmailService) *ContactReplyHandler {
	return &ContactReplyHandler{emailService: emailService}
}

func (h *ContactReplyHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ContactReplyPayload
	if err := decode(task, &payload); err != nil {
		return err
	}

	req, err := email.ContactReplyEmail(payload)
	return send(ctx, h.emailService, task.Type(), req, err)
}

type ContactNoticeHandler struct {
	emailService email.EmailService
}

func NewContactNoticeHandler(emailService email.EmailService) *ContactNoticeHandler {
	return &ContactNoticeHandler{emailService: emailService}
}

func (h *ContactNoticeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ContactNoticePayload
	if err := decode(task, &payload); err != nil {
		return err
	}

	req, err := email.ContactNoticeEmail(payload)
	return send(ctx, h.emailService, task.Type(), req, err)
}
