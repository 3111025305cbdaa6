package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/domains/promo/model"
)

type ServiceInterface interface {
	// Storefront
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*model.ValidationResult, error)

	// Redeem re-validates under a row lock and counts the usage, inside the order transaction
	Redeem(ctx context.Context, tx pgx.Tx, code string, subtotal decimal.Decimal) (*model.ValidationResult, error)
	// EvictCode clears the cached lookup once the redeeming transaction has committed
	EvictCode(ctx context.Context, code string)

	// Admin
	List(ctx context.Context, filter model.ListFilter) ([]*model.PromoCode, int, error)
	Get(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)
	Create(ctx context.Context, req model.CreatePromoRequest) (*model.PromoCode, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdatePromoRequest) (*model.PromoCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Toggle(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)

	// Scheduled
	DeactivateExpired(ctx context.Context) (int, error)
}
