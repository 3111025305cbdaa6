package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alupro-backend/internal/domains/page/model"
)

type PageRepository interface {
	FindByKey(ctx context.Context, key string) (*model.Page, error)
	Upsert(ctx context.Context, page *model.Page) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) PageRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByKey(ctx context.Context, key string) (*model.Page, error) {
	query := `
		SELECT page_key, name, sections, updated_by, updated_at
		FROM page_contents
		WHERE page_key = $1
	`

	var p model.Page
	err := r.pool.QueryRow(ctx, query, key).Scan(&p.Key, &p.Name, &p.Sections, &p.UpdatedBy, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoContent
		}
		return nil, fmt.Errorf("find page %s: %w", key, err)
	}
	return &p, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, p *model.Page) error {
	sections, err := json.Marshal(p.Sections)
	if err != nil {
		return fmt.Errorf("encode page sections: %w", err)
	}

	query := `
		INSERT INTO page_contents (page_key, name, sections, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (page_key) DO UPDATE
		SET name = EXCLUDED.name,
		    sections = EXCLUDED.sections,
		    updated_by = EXCLUDED.updated_by,
		    updated_at = NOW()
		RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query, p.Key, p.Name, sections, p.UpdatedBy).Scan(&p.UpdatedAt); err != nil {
		return fmt.Errorf("upsert page %s: %w", p.Key, err)
	}
	return nil
}
