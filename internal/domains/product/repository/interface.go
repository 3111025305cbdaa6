package repository

import (
	"context"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/product/model"
)

// =====================================================
// PRODUCT REPOSITORY INTERFACE
// =====================================================
type ProductRepository interface {
	// Reads
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	// FindByIDs returns whatever exists, in no particular order, inactive included
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Product, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Product, int, error)
	ListFeatured(ctx context.Context, limit int) ([]*model.Product, error)
	ListRelated(ctx context.Context, p *model.Product, limit int) ([]*model.Product, error)
	CountActive(ctx context.Context) (int, error)

	// Writes
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	AppendImage(ctx context.Context, id uuid.UUID, url string) (*model.Product, error)
}
