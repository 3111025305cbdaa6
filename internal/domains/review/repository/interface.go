package repository

import (
	"context"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]*model.Review, int, error)
	Summary(ctx context.Context, productID uuid.UUID) (*model.Summary, error)
	AdminList(ctx context.Context, filter model.ListFilter) ([]*model.Review, int, error)
	CountPending(ctx context.Context) (int, error)

	// Approve and Delete recompute the product's rating and reviews_count
	// in the same transaction
	Approve(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
