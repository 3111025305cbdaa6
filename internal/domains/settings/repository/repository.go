package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alupro-backend/pkg/database"
)

// SettingsRepository stores settings as setting_key / jsonb setting_value rows
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]interface{}, error)
	Upsert(ctx context.Context, values map[string]interface{}, updatedBy *uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) SettingsRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetAll(ctx context.Context) (map[string]interface{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT setting_key, setting_value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("query site settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]interface{})
	for rows.Next() {
		var (
			key   string
			value interface{}
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan site setting: %w", err)
		}
		values[key] = value
	}
	return values, rows.Err()
}

// Upsert writes every key in one transaction
func (r *postgresRepository) Upsert(ctx context.Context, values map[string]interface{}, updatedBy *uuid.UUID) error {
	query := `
		INSERT INTO site_settings (setting_key, setting_value, updated_by, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (setting_key) DO UPDATE
		SET setting_value = EXCLUDED.setting_value,
		    updated_by = EXCLUDED.updated_by,
		    updated_at = NOW()
	`

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for key, value := range values {
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode setting %s: %w", key, err)
			}
			if _, err := tx.Exec(ctx, query, key, encoded, updatedBy); err != nil {
				return fmt.Errorf("upsert setting %s: %w", key, err)
			}
		}
		return nil
	})
}
