package service

import (
	"context"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/product/model"
)

type ProductService interface {
	// Storefront
	List(ctx context.Context, filter model.ListFilter) ([]*model.Product, int, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Featured(ctx context.Context) ([]*model.Product, error)
	Related(ctx context.Context, slug string) ([]*model.Product, error)

	// Admin
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, createdBy *uuid.UUID, req model.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.ImageUploadResult, error)
}

// ObjectStorage is the part of the MinIO client products need
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ImageProcessor validates uploads and renders the size variants
type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessImage(data []byte) (map[string][]byte, error)
}
