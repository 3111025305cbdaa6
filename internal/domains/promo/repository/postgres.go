package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alupro-backend/internal/domains/promo/model"
	"alupro-backend/internal/infrastructure/database"
	"alupro-backend/internal/shared/utils"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) PromoRepository {
	return &postgresRepository{db: db}
}

const promoColumns = `
	id, code, discount_type, discount_value, minimum_amount, max_discount_amount,
	expires_at, is_active, used_count, max_uses, description, created_at, updated_at`

func scanPromo(row pgx.Row) (*model.PromoCode, error) {
	var p model.PromoCode
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MinimumAmount,     // nullable
		&p.MaxDiscountAmount, // nullable
		&p.ExpiresAt,         // nullable
		&p.IsActive,
		&p.UsedCount,
		&p.MaxUses, // nullable
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// -------------------------------------------------------------------
// READ OPERATIONS
// -------------------------------------------------------------------

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	query := `SELECT` + promoColumns + ` FROM promo_codes WHERE id = $1`

	p, err := scanPromo(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrPromoNotFound) {
		return nil, fmt.Errorf("find promo by id: %w", err)
	}
	return p, err
}

// FindByCode ignores is_active, the validator decides what an inactive code means
func (r *postgresRepository) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `SELECT` + promoColumns + ` FROM promo_codes WHERE code = UPPER($1)`

	p, err := scanPromo(r.db.QueryRow(ctx, query, code))
	if err != nil && !errors.Is(err, model.ErrPromoNotFound) {
		return nil, fmt.Errorf("find promo by code: %w", err)
	}
	return p, err
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.PromoCode, int, error) {
	w := utils.NewWhereBuilder()
	if filter.Active != nil {
		w.Add("is_active = ?", *filter.Active)
	}
	if filter.Search != "" {
		w.Add("(code ILIKE ? OR description ILIKE ?)", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM promo_codes`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count promos: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM promo_codes%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		promoColumns, w.SQL(), w.Next(), w.Next()+1)
	args := append(w.Args(), filter.Limit, utils.Offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list promos: %w", err)
	}
	defer rows.Close()

	promos := make([]*model.PromoCode, 0)
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan promo: %w", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate promos: %w", err)
	}

	return promos, total, nil
}

// -------------------------------------------------------------------
// WRITE OPERATIONS
// -------------------------------------------------------------------

func (r *postgresRepository) Create(ctx context.Context, p *model.PromoCode) error {
	query := `
		INSERT INTO promo_codes (
			code, discount_type, discount_value, minimum_amount, max_discount_amount,
			expires_at, is_active, max_uses, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, used_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Code, p.DiscountType, p.DiscountValue, p.MinimumAmount, p.MaxDiscountAmount,
		p.ExpiresAt, p.IsActive, p.MaxUses, p.Description,
	).Scan(&p.ID, &p.UsedCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrPromoDuplicate
		}
		return fmt.Errorf("create promo: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.PromoCode) error {
	query := `
		UPDATE promo_codes SET
			code = $2, discount_type = $3, discount_value = $4, minimum_amount = $5,
			max_discount_amount = $6, expires_at = $7, is_active = $8, max_uses = $9,
			description = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Code, p.DiscountType, p.DiscountValue, p.MinimumAmount,
		p.MaxDiscountAmount, p.ExpiresAt, p.IsActive, p.MaxUses, p.Description,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrPromoNotFound
		}
		if database.IsUniqueViolation(err) {
			return model.ErrPromoDuplicate
		}
		return fmt.Errorf("update promo: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}
	return nil
}

func (r *postgresRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.PromoCode, error) {
	query := `UPDATE promo_codes SET is_active = $2, updated_at = NOW() WHERE id = $1 RETURNING` + promoColumns

	p, err := scanPromo(r.db.QueryRow(ctx, query, id, active))
	if err != nil && !errors.Is(err, model.ErrPromoNotFound) {
		return nil, fmt.Errorf("set promo active: %w", err)
	}
	return p, err
}

// DeactivateExpired returns the codes it switched off so their cache entries can be evicted
func (r *postgresRepository) DeactivateExpired(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE promo_codes SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND expires_at IS NOT NULL AND expires_at < $1
		RETURNING code`, now)
	if err != nil {
		return nil, fmt.Errorf("deactivate expired promos: %w", err)
	}

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect deactivated codes: %w", err)
	}
	return codes, nil
}

// -------------------------------------------------------------------
// REDEMPTION
// -------------------------------------------------------------------

// LockByCode takes a row lock so concurrent redemptions of a capped code serialize
func (r *postgresRepository) LockByCode(ctx context.Context, tx pgx.Tx, code string) (*model.PromoCode, error) {
	query := `SELECT` + promoColumns + ` FROM promo_codes WHERE code = UPPER($1) FOR UPDATE`

	p, err := scanPromo(tx.QueryRow(ctx, query, code))
	if err != nil && !errors.Is(err, model.ErrPromoNotFound) {
		return nil, fmt.Errorf("lock promo: %w", err)
	}
	return p, err
}

func (r *postgresRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE promo_codes SET used_count = used_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment promo usage: %w", err)
	}
	return nil
}
