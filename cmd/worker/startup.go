// cmd/worker/startup.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alupro-backend/pkg/container"
	"alupro-backend/pkg/logger"
)

const healthAddr = ":9999"

// HealthChecker performs startup and liveness checks
type HealthChecker struct {
	c *container.Container
}

// startServices performs health checks then exposes the probe endpoints
func startServices(ctx context.Context, c *container.Container) error {
	logger.Info("AluPro worker starting", map[string]interface{}{
		"environment": c.Config.App.Environment,
		"kafka":       c.Config.Kafka.Enabled(),
	})

	checker := &HealthChecker{c: c}
	if err := checker.checkAll(ctx); err != nil {
		return err
	}

	go checker.serve(ctx)
	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", h.c.Redis.HealthCheck},
		{"PostgreSQL Connection", h.c.DB.HealthCheck},
	}

	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Debug("Health check passed", map[string]interface{}{"check": check.name})
	}

	return nil
}

// serve exposes /health (liveness) and /ready (readiness) until ctx ends
func (h *HealthChecker) serve(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP","service":"alupro-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := h.checkAll(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"READY"}`))
	})

	srv := &http.Server{Addr: healthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("[Health] Starting health check server", map[string]interface{}{"addr": healthAddr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("[Health] Failed to start", err)
	}
}
