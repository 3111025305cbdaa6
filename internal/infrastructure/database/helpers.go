package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Postgres error codes the repositories care about
const (
	pgUniqueViolation = "23505"
)

// Close closes the pool, safe to call multiple times
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing connection pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats is a JSON friendly snapshot of pgxpool.Stat for /health
type PoolStats struct {
	TotalConns      int32         `json:"total_conns"`
	IdleConns       int32         `json:"idle_conns"`
	AcquiredConns   int32         `json:"acquired_conns"`
	MaxConns        int32         `json:"max_conns"`
	AcquireCount    int64         `json:"acquire_count"`
	EmptyAcquires   int64         `json:"empty_acquire_count"`
	AvgAcquireDelay time.Duration `json:"avg_acquire_delay"`
}

// Stats returns pool statistics
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	stats := &PoolStats{
		TotalConns:    raw.TotalConns(),
		IdleConns:     raw.IdleConns(),
		AcquiredConns: raw.AcquiredConns(),
		MaxConns:      raw.MaxConns(),
		AcquireCount:  raw.AcquireCount(),
		EmptyAcquires: raw.EmptyAcquireCount(),
	}
	if raw.AcquireCount() > 0 {
		stats.AvgAcquireDelay = raw.AcquireDuration() / time.Duration(raw.AcquireCount())
	}
	return stats, nil
}

// MonitorPoolHealth logs pool saturation every interval until ctx is done
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				return
			}
			if stats.MaxConns > 0 && stats.AcquiredConns*10 >= stats.MaxConns*9 {
				log.Warn().
					Int32("acquired", stats.AcquiredConns).
					Int32("max", stats.MaxConns).
					Msg("[DATABASE] Pool above 90% utilisation")
			}
		}
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint ...string) bool {
	return isPgError(err, pgUniqueViolation, constraint...)
}

func isPgError(err error, code string, constraint ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
