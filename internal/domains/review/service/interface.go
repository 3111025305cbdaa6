package service

import (
	"context"

	"github.com/google/uuid"

	productModel "alupro-backend/internal/domains/product/model"
	"alupro-backend/internal/domains/review/model"
)

type ReviewService interface {
	// Storefront, products addressed by slug
	Submit(ctx context.Context, slug string, req model.CreateReviewRequest) (*model.Review, error)
	ListForProduct(ctx context.Context, slug string, page, limit int) (*ProductReviews, error)

	// Admin
	List(ctx context.Context, filter model.ListFilter) ([]*model.Review, int, error)
	Approve(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountPending(ctx context.Context) (int, error)
}

// ProductFinder resolves the public slug to an active product
type ProductFinder interface {
	FindBySlug(ctx context.Context, slug string) (*productModel.Product, error)
}

type ProductReviews struct {
	Summary *model.Summary  `json:"summary"`
	Reviews []*model.Review `json:"reviews"`
	Total   int             `json:"-"`
}
