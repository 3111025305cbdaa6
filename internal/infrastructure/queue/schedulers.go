package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"alupro-backend/internal/config"
	"alupro-backend/internal/shared"
	"alupro-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerDeactivateExpiredPromosJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB: Deactivate Expired Promo Codes (hourly by default)
// ================================================
// Validation already rejects expired codes, this keeps the admin list honest
func (s *Scheduler) registerDeactivateExpiredPromosJob() error {
	task, err := shared.MarshalTask(shared.TypeDeactivateExpiredPromos, shared.DeactivateExpiredPromosPayload{})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.jobConfig.PromoExpirySpec,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(30*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DeactivateExpiredPromos job", err)
		return err
	}

	logger.Info("✓ Registered DeactivateExpiredPromos", map[string]interface{}{
		"spec": s.jobConfig.PromoExpirySpec,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
