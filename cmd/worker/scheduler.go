package main

import (
	"github.com/rs/zerolog/log"

	"alupro-backend/internal/infrastructure/queue"
	"alupro-backend/pkg/container"
	"alupro-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates and configures the scheduler
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(redisOpt(c), c.Config.Jobs)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		logger.Info("[Scheduler] Starting", nil)
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	logger.Info("[Scheduler] Shutting down", nil)
	s.Scheduler.Shutdown()
	logger.Info("[Scheduler] Stopped", nil)
}
