package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/product/model"
	"alupro-backend/internal/domains/product/repository"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

const (
	FeaturedLimit = 6
	RelatedLimit  = 4

	// FeaturedCacheKey is also evicted when review moderation changes ratings
	FeaturedCacheKey = "products:featured"
	featuredCacheTTL = 10 * time.Minute

	// mainVariant is the size appended to product.images
	mainVariant = "large"
)

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	storage   ObjectStorage
	processor ImageProcessor
}

func NewProductService(
	repo repository.ProductRepository,
	c cache.Cache,
	storage ObjectStorage,
	processor ImageProcessor,
) ProductService {
	return &productService{
		repo:      repo,
		cache:     c,
		storage:   storage,
		processor: processor,
	}
}

// =====================================================
// STOREFRONT
// =====================================================

func (s *productService) List(ctx context.Context, filter model.ListFilter) ([]*model.Product, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// Featured is read on every home page view, cached until the next product write
func (s *productService) Featured(ctx context.Context) ([]*model.Product, error) {
	var cached []*model.Product
	found, err := s.cache.Get(ctx, FeaturedCacheKey, &cached)
	if err != nil {
		logger.Warn("Featured products cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return cached, nil
	}

	products, err := s.repo.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, FeaturedCacheKey, products, featuredCacheTTL); err != nil {
		logger.Warn("Featured products cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return products, nil
}

func (s *productService) Related(ctx context.Context, slug string) ([]*model.Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRelated(ctx, p, RelatedLimit)
}

// =====================================================
// ADMIN
// =====================================================

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, createdBy *uuid.UUID, req model.ProductRequest) (*model.Product, error) {
	p := req.ToEntity(createdBy)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Product created", map[string]interface{}{"product_id": p.ID, "slug": p.Slug})
	return p, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req model.ProductRequest) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

// Delete removes the row, then its stored images. Order lines keep their
// own snapshot so past orders are unaffected.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	if err := s.storage.DeleteByPrefix(ctx, imagePrefix(id)); err != nil {
		logger.ErrorWithFields("Failed to delete product images", err, map[string]interface{}{"product_id": id})
	}
	return nil
}

// UploadImage stores every size variant under products/{id}/{upload}/ and
// appends the large one to the product's gallery
func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.ImageUploadResult, error) {
	// Step 1: product must exist before we store anything
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	// Step 2: validate + resize
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, model.ErrInvalidImage.Wrap(err)
	}
	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, model.ErrInvalidImage.Wrap(err)
	}

	// Step 3: upload
	uploadID := uuid.New()
	urls := make(map[string]string, len(variants))
	for name, bytes := range variants {
		key := fmt.Sprintf("%s%s/%s.jpg", imagePrefix(id), uploadID, name)
		url, err := s.storage.Upload(ctx, key, bytes, "image/jpeg")
		if err != nil {
			logger.ErrorWithFields("Product image upload failed", err, map[string]interface{}{"key": key})
			return nil, model.ErrUploadFailed.Wrap(err)
		}
		urls[name] = url
	}

	// Step 4: attach
	mainURL, ok := urls[mainVariant]
	if !ok {
		return nil, model.ErrUploadFailed.Wrap(fmt.Errorf("variant %q missing", mainVariant))
	}
	p, err := s.repo.AppendImage(ctx, id, mainURL)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &model.ImageUploadResult{URL: mainURL, Variants: urls, Product: p}, nil
}

func imagePrefix(id uuid.UUID) string {
	return "products/" + id.String() + "/"
}

func (s *productService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, FeaturedCacheKey); err != nil {
		logger.Warn("Featured products cache eviction failed", map[string]interface{}{"error": err.Error()})
	}
}
