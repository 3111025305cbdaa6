package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"alupro-backend/internal/shared"
)

// AsynqEnqueuer implements shared.TaskEnqueuer with an asynq client
type AsynqEnqueuer struct {
	client *asynq.Client
}

var _ shared.TaskEnqueuer = (*AsynqEnqueuer)(nil)

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	task, err := shared.MarshalTask(taskType, payload)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Debug().Str("type", taskType).Str("id", info.ID).Str("queue", info.Queue).Msg("[QUEUE] Task enqueued")
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}
