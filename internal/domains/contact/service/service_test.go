package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/config"
	"alupro-backend/internal/domains/contact/model"
	"alupro-backend/internal/domains/contact/repository"
	"alupro-backend/internal/infrastructure/cache"
	"alupro-backend/internal/shared"
)

type mockRepo struct {
	repository.MessageRepository
	messages map[uuid.UUID]*model.Message
}

func (m *mockRepo) Create(_ context.Context, msg *model.Message) error {
	msg.CreatedAt = time.Now()
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockRepo) SaveReply(_ context.Context, id uuid.UUID, reply string, by uuid.UUID, at time.Time) (*model.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, model.ErrMessageNotFound
	}
	msg.ReplyMessage = &reply
	msg.RepliedBy = &by
	msg.RepliedAt = &at
	msg.IsRead = true
	return msg, nil
}

type recordingEnqueuer struct {
	types    []string
	payloads []interface{}
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, taskType string, payload interface{}, _ ...asynq.Option) error {
	r.types = append(r.types, taskType)
	r.payloads = append(r.payloads, payload)
	return nil
}

func setup(t *testing.T, cfg config.ContactConfig) (*contactService, *mockRepo, *recordingEnqueuer, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := &mockRepo{messages: map[uuid.UUID]*model.Message{}}
	enq := &recordingEnqueuer{}
	svc := NewContactService(repo, cache.NewRedisCache(client), enq, cfg).(*contactService)
	return svc, repo, enq, mr
}

var form = model.CreateMessageRequest{
	Name:    "خالد",
	Email:   " Khaled@Example.com ",
	Phone:   "01000000000",
	Subject: "استفسار عن مطبخ",
	Message: "أريد معرفة سعر مطبخ 3 متر",
}

func TestSubmit_StoresUnreadAndNotifies(t *testing.T) {
	svc, repo, enq, _ := setup(t, config.ContactConfig{NotifyEmail: "info@alupro.test"})

	msg, err := svc.Submit(context.Background(), "10.0.0.1", form)
	require.NoError(t, err)

	assert.False(t, msg.IsRead)
	assert.Equal(t, "khaled@example.com", msg.Email)
	assert.Len(t, repo.messages, 1)

	require.Equal(t, []string{shared.TypeSendContactNotice}, enq.types)
	notice := enq.payloads[0].(shared.ContactNoticePayload)
	assert.Equal(t, "info@alupro.test", notice.To)
}

func TestSubmit_NoNotifyEmail(t *testing.T) {
	svc, _, enq, _ := setup(t, config.ContactConfig{})

	_, err := svc.Submit(context.Background(), "10.0.0.1", form)
	require.NoError(t, err)
	assert.Empty(t, enq.types)
}

func TestSubmit_RateLimitedPerIP(t *testing.T) {
	svc, repo, _, mr := setup(t, config.ContactConfig{RateLimit: 2, RateWindow: time.Hour})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(ctx, "10.0.0.1", form)
		require.NoError(t, err)
	}

	_, err := svc.Submit(ctx, "10.0.0.1", form)
	assert.ErrorIs(t, err, model.ErrRateLimited)
	assert.Len(t, repo.messages, 2)

	// other clients are unaffected
	_, err = svc.Submit(ctx, "10.0.0.2", form)
	assert.NoError(t, err)

	// window expiry resets the counter
	assert.Equal(t, time.Hour, mr.TTL(rateKeyPrefix+"10.0.0.1"))
	mr.FastForward(time.Hour + time.Second)
	_, err = svc.Submit(ctx, "10.0.0.1", form)
	assert.NoError(t, err)
}

func TestReply_StoresAndEmails(t *testing.T) {
	svc, _, enq, _ := setup(t, config.ContactConfig{})
	ctx := context.Background()

	msg, err := svc.Submit(ctx, "", form)
	require.NoError(t, err)

	admin := uuid.New()
	replied, err := svc.Reply(ctx, msg.ID, admin, model.ReplyRequest{Reply: "  سعر المتر يبدأ من 4000 جنيه "})
	require.NoError(t, err)

	assert.True(t, replied.IsRead)
	assert.True(t, replied.IsReplied())
	assert.Equal(t, "سعر المتر يبدأ من 4000 جنيه", *replied.ReplyMessage)

	require.Equal(t, []string{shared.TypeSendContactReply}, enq.types)
	payload := enq.payloads[0].(shared.ContactReplyPayload)
	assert.Equal(t, "khaled@example.com", payload.Email)
	assert.Equal(t, form.Message, payload.OriginalMessage)
}

func TestReply_NotFound(t *testing.T) {
	svc, _, enq, _ := setup(t, config.ContactConfig{})

	_, err := svc.Reply(context.Background(), uuid.New(), uuid.New(), model.ReplyRequest{Reply: "ok"})
	assert.ErrorIs(t, err, model.ErrMessageNotFound)
	assert.Empty(t, enq.types)
}
