package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/infrastructure/email"
	"alupro-backend/internal/shared"
)

type fakeEmailService struct {
	sent []email.EmailRequest
	err  error
}

func (f *fakeEmailService) SendEmail(_ context.Context, req email.EmailRequest) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

func TestOrderConfirmationHandler_Sends(t *testing.T) {
	svc := &fakeEmailService{}
	h := NewOrderConfirmationHandler(svc, "https://alupro.com")

	task, err := shared.MarshalTask(shared.TypeSendOrderConfirmation, shared.OrderEmailPayload{
		OrderNumber:   "ORD-1-1",
		CustomerEmail: "a@example.com",
		Subtotal:      "100.00",
		Discount:      "0",
		Total:         "164.00",
	})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	require.Len(t, svc.sent, 1)
	assert.Equal(t, []string{"a@example.com"}, svc.sent[0].To)
}

func TestHandler_MalformedPayloadSkipsRetry(t *testing.T) {
	h := NewOrderStatusUpdateHandler(&fakeEmailService{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendOrderStatusUpdate, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandler_SMTPFailureIsRetried(t *testing.T) {
	h := NewContactReplyHandler(&fakeEmailService{err: errors.New("connection refused")})

	task, err := shared.MarshalTask(shared.TypeSendContactReply, shared.ContactReplyPayload{Email: "c@example.com", Subject: "s", Reply: "r"})
	require.NoError(t, err)

	err = h.ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}
