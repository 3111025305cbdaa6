package main

import (
	"github.com/hibiken/asynq"

	promoJob "alupro-backend/internal/domains/promo/job"
	"alupro-backend/internal/infrastructure/email"
	emailjob "alupro-backend/internal/infrastructure/email/job"
	"alupro-backend/internal/shared"
	"alupro-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Order emails
	orderConfirmation *emailjob.OrderConfirmationHandler
	orderAdminNotice  *emailjob.OrderAdminNoticeHandler
	orderStatusUpdate *emailjob.OrderStatusUpdateHandler

	// Contact emails
	contactReply  *emailjob.ContactReplyHandler
	contactNotice *emailjob.ContactNoticeHandler

	// Maintenance
	deactivateExpiredPromos *promoJob.DeactivateExpiredHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(c.Config.SMTP)

	return &HandlerRegistry{
		orderConfirmation: emailjob.NewOrderConfirmationHandler(emailSvc, c.Config.SMTP.SiteURL),
		orderAdminNotice:  emailjob.NewOrderAdminNoticeHandler(emailSvc),
		orderStatusUpdate: emailjob.NewOrderStatusUpdateHandler(emailSvc),

		contactReply:  emailjob.NewContactReplyHandler(emailSvc),
		contactNotice: emailjob.NewContactNoticeHandler(emailSvc),

		deactivateExpiredPromos: promoJob.NewDeactivateExpiredHandler(c.PromoService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Order emails
	mux.HandleFunc(shared.TypeSendOrderConfirmation, h.orderConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeSendOrderAdminNotice, h.orderAdminNotice.ProcessTask)
	mux.HandleFunc(shared.TypeSendOrderStatusUpdate, h.orderStatusUpdate.ProcessTask)

	// Contact emails
	mux.HandleFunc(shared.TypeSendContactReply, h.contactReply.ProcessTask)
	mux.HandleFunc(shared.TypeSendContactNotice, h.contactNotice.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeDeactivateExpiredPromos, h.deactivateExpiredPromos.ProcessTask)
}
