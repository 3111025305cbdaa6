package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"alupro-backend/internal/domains/promo/model"
)

// PromoRepository is the promo_codes data access contract
type PromoRepository interface {
	// Read
	FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.PromoCode, int, error)

	// Write
	Create(ctx context.Context, promo *model.PromoCode) error
	Update(ctx context.Context, promo *model.PromoCode) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.PromoCode, error)
	DeactivateExpired(ctx context.Context, now time.Time) ([]string, error)

	// Redemption, inside the order transaction
	LockByCode(ctx context.Context, tx pgx.Tx, code string) (*model.PromoCode, error)
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
