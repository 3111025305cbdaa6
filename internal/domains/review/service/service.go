package service

import (
	"context"

	"github.com/google/uuid"

	productService "alupro-backend/internal/domains/product/service"
	"alupro-backend/internal/domains/review/model"
	"alupro-backend/internal/domains/review/repository"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

type reviewService struct {
	repo     repository.ReviewRepository
	products ProductFinder
	cache    cache.Cache
}

func NewReviewService(repo repository.ReviewRepository, products ProductFinder, c cache.Cache) ReviewService {
	return &reviewService{repo: repo, products: products, cache: c}
}

// =====================================================
// STOREFRONT
// =====================================================

// Submit stores a pending review; it shows up once an editor approves it
func (s *reviewService) Submit(ctx context.Context, slug string, req model.CreateReviewRequest) (*model.Review, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	review := req.ToEntity(product.ID)
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("Review submitted", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": product.ID,
		"rating":     review.Rating,
	})
	return review, nil
}

func (s *reviewService) ListForProduct(ctx context.Context, slug string, page, limit int) (*ProductReviews, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	reviews, total, err := s.repo.ListApprovedByProduct(ctx, product.ID, page, limit)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &ProductReviews{Summary: summary, Reviews: reviews, Total: total}, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *reviewService) List(ctx context.Context, filter model.ListFilter) ([]*model.Review, int, error) {
	return s.repo.AdminList(ctx, filter)
}

func (s *reviewService) Approve(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	s.evictFeatured(ctx)
	logger.Info("Review approved", map[string]interface{}{"review_id": id, "product_id": review.ProductID})
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evictFeatured(ctx)
	return nil
}

func (s *reviewService) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}

// Featured products are ordered by rating
func (s *reviewService) evictFeatured(ctx context.Context) {
	if err := s.cache.Delete(ctx, productService.FeaturedCacheKey); err != nil {
		logger.Warn("Featured products cache eviction failed", map[string]interface{}{"error": err.Error()})
	}
}
