package config

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"alupro-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig reads the pgx pool settings from DB_* variables.
// Malformed numbers or durations fail startup instead of silently using defaults.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Username: getEnv("DB_USER", "alupro"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "alupro_dev"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	ints := []struct {
		key string
		def string
		dst func(int)
	}{
		{"DB_PORT", "5432", func(v int) { cfg.Port = v }},
		{"DB_MAX_CONNECTIONS", "25", func(v int) { cfg.MaxConns = int32(v) }},
		{"DB_MIN_CONNECTIONS", "5", func(v int) { cfg.MinConns = int32(v) }},
		{"DB_MAX_RETRIES", "5", func(v int) { cfg.MaxRetries = v }},
	}
	for _, f := range ints {
		v, err := cast.ToIntE(getEnv(f.key, f.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		f.dst(v)
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"DB_MAX_CONN_LIFETIME", "5m", &cfg.MaxConnLifetime},
		{"DB_MAX_CONN_IDLE_TIME", "1m", &cfg.MaxConnIdleTime},
		{"DB_HEALTH_CHECK_PERIOD", "1m", &cfg.HealthCheckPeriod},
		{"DB_RETRY_DELAY", "1s", &cfg.RetryDelay},
		{"DB_CONNECT_TIMEOUT", "10s", &cfg.ConnectTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}

	return cfg, nil
}
