// cmd/worker/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"alupro-backend/pkg/container"
	"alupro-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize container
	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize handlers
	handlers := initializeHandlers(c)

	// Setup Asynq server
	srv := setupAsynqServer(c, handlers)

	// Setup scheduler
	scheduler := setupScheduler(c)

	// Relay order events to Kafka when brokers are configured
	outbox := setupOutboxPoller(ctx, c)

	// Perform health checks and log startup
	if err := startServices(ctx, c); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	// Wait for shutdown signal
	waitForShutdown(cancel, srv, scheduler, outbox)
}

func waitForShutdown(cancel context.CancelFunc, srv *asynqServer, scheduler *asynqScheduler, outbox *outboxRelay) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping", nil)
	cancel()
	outbox.Shutdown()
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("[Shutdown] Stopped", nil)
}
