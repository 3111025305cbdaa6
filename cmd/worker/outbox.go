package main

import (
	"context"
	"sync"

	"alupro-backend/internal/infrastructure/events"
	"alupro-backend/pkg/container"
	"alupro-backend/pkg/logger"
)

// outboxRelay runs the order_events -> Kafka poller; a nil relay is a no-op
type outboxRelay struct {
	poller *events.OutboxPoller
	wg     sync.WaitGroup
}

func setupOutboxPoller(ctx context.Context, c *container.Container) *outboxRelay {
	kafkaCfg := c.Config.Kafka
	if !kafkaCfg.Enabled() {
		logger.Info("[Outbox] KAFKA_BROKERS not set, order events stay in the outbox", nil)
		return nil
	}

	poller := events.NewOutboxPoller(
		events.NewPostgresOutboxStore(c.DB.Pool),
		events.NewKafkaWriter(kafkaCfg),
		kafkaCfg.PollInterval,
		kafkaCfg.BatchSize,
	)

	r := &outboxRelay{poller: poller}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		poller.Run(ctx)
	}()
	return r
}

// Shutdown waits for the current batch then flushes the Kafka writer.
// The caller cancels ctx first.
func (r *outboxRelay) Shutdown() {
	if r == nil {
		return
	}
	r.wg.Wait()
	if err := r.poller.Close(); err != nil {
		logger.Error("[Outbox] Failed to close Kafka writer", err)
	}
}
