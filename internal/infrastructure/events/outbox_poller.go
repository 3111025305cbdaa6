package events

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"alupro-backend/internal/config"
)

// MessageWriter is the subset of *kafka.Writer the poller uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboxPoller relays order_events rows to Kafka, at least once
type OutboxPoller struct {
	store     OutboxStore
	writer    MessageWriter
	interval  time.Duration
	batchSize int
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{}, // same order id -> same partition
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewOutboxPoller(store OutboxStore, writer MessageWriter, interval time.Duration, batchSize int) *OutboxPoller {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxPoller{store: store, writer: writer, interval: interval, batchSize: batchSize}
}

// Run blocks until ctx is cancelled
func (p *OutboxPoller) Run(ctx context.Context) {
	log.Info().Dur("interval", p.interval).Msg("[OUTBOX] Poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.ProcessBatch(ctx)
		case <-ctx.Done():
			log.Info().Msg("[OUTBOX] Poller stopped")
			return
		}
	}
}

// ProcessBatch publishes one batch, returns how many events were marked published.
// Stops at the first publish failure so per-order ordering is kept.
func (p *OutboxPoller) ProcessBatch(ctx context.Context) int {
	events, err := p.store.FetchUnpublished(ctx, p.batchSize)
	if err != nil {
		log.Error().Err(err).Msg("[OUTBOX] Failed to fetch events")
		return 0
	}

	published := 0
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			log.Error().Err(err).Int64("event_id", event.ID).Msg("[OUTBOX] Failed to publish event")
			return published
		}

		if err := p.store.MarkPublished(ctx, event.ID); err != nil {
			// Will be re-sent next tick, consumers dedupe on event_id
			log.Error().Err(err).Int64("event_id", event.ID).Msg("[OUTBOX] Failed to mark event published")
			return published
		}
		published++
	}

	if published > 0 {
		log.Debug().Int("count", published).Msg("[OUTBOX] Events published")
	}
	return published
}

func (p *OutboxPoller) publish(ctx context.Context, event OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Time:  event.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(strconv.FormatInt(event.ID, 10))},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}
