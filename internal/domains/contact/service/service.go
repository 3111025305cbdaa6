package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"alupro-backend/internal/config"
	"alupro-backend/internal/domains/contact/model"
	"alupro-backend/internal/domains/contact/repository"
	"alupro-backend/internal/shared"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

const rateKeyPrefix = "contact:rate:"

type ContactService interface {
	Submit(ctx context.Context, clientIP string, req model.CreateMessageRequest) (*model.Message, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Message, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error)
	Reply(ctx context.Context, id, repliedBy uuid.UUID, req model.ReplyRequest) (*model.Message, error)
	CountUnread(ctx context.Context) (int, error)
}

type contactService struct {
	repo     repository.MessageRepository
	cache    cache.Cache
	enqueuer shared.TaskEnqueuer
	cfg      config.ContactConfig
	now      func() time.Time
}

func NewContactService(
	repo repository.MessageRepository,
	c cache.Cache,
	enqueuer shared.TaskEnqueuer,
	cfg config.ContactConfig,
) ContactService {
	return &contactService{repo: repo, cache: c, enqueuer: enqueuer, cfg: cfg, now: time.Now}
}

// Submit stores an unread message and notifies the back office
func (s *contactService) Submit(ctx context.Context, clientIP string, req model.CreateMessageRequest) (*model.Message, error) {
	// Step 1: fixed window rate limit per client IP
	if err := s.checkRate(ctx, clientIP); err != nil {
		return nil, err
	}

	// Step 2: persist
	msg := req.ToEntity()
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	logger.Info("Contact message received", map[string]interface{}{"message_id": msg.ID, "email": msg.Email})

	// Step 3: notify
	if s.cfg.NotifyEmail != "" {
		payload := shared.ContactNoticePayload{
			To:      s.cfg.NotifyEmail,
			Name:    msg.Name,
			Email:   msg.Email,
			Phone:   msg.Phone,
			Subject: msg.Subject,
			Message: msg.Message,
		}
		if err := s.enqueuer.Enqueue(ctx, shared.TypeSendContactNotice, payload,
			asynq.Queue(shared.QueueDefault), asynq.MaxRetry(3)); err != nil {
			logger.ErrorWithFields("Failed to enqueue contact notice", err, map[string]interface{}{"message_id": msg.ID})
		}
	}

	return msg, nil
}

// checkRate fails open: a cache outage never blocks the contact form
func (s *contactService) checkRate(ctx context.Context, clientIP string) error {
	if s.cfg.RateLimit <= 0 || clientIP == "" {
		return nil
	}

	key := rateKeyPrefix + clientIP
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("Contact rate limit unavailable", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, s.cfg.RateWindow); err != nil {
			logger.Warn("Contact rate window not set", map[string]interface{}{"error": err.Error()})
		}
	}
	if count > int64(s.cfg.RateLimit) {
		logger.Warn("Contact form rate limited", map[string]interface{}{"ip": clientIP, "count": count})
		return model.ErrRateLimited
	}
	return nil
}

func (s *contactService) List(ctx context.Context, filter model.ListFilter) ([]*model.Message, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *contactService) MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	return s.repo.MarkRead(ctx, id)
}

// Reply stores the answer and emails it to the customer
func (s *contactService) Reply(ctx context.Context, id, repliedBy uuid.UUID, req model.ReplyRequest) (*model.Message, error) {
	reply := strings.TrimSpace(req.Reply)

	msg, err := s.repo.SaveReply(ctx, id, reply, repliedBy, s.now())
	if err != nil {
		return nil, err
	}

	payload := shared.ContactReplyPayload{
		Name:            msg.Name,
		Email:           msg.Email,
		Subject:         msg.Subject,
		OriginalMessage: msg.Message,
		Reply:           reply,
	}
	if err := s.enqueuer.Enqueue(ctx, shared.TypeSendContactReply, payload,
		asynq.Queue(shared.QueueHigh), asynq.MaxRetry(5)); err != nil {
		logger.ErrorWithFields("Failed to enqueue contact reply", err, map[string]interface{}{"message_id": id})
	}

	logger.Info("Contact message replied", map[string]interface{}{"message_id": id, "replied_by": repliedBy})
	return msg, nil
}

func (s *contactService) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}
