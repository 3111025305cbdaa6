package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productModel "alupro-backend/internal/domains/product/model"
	productService "alupro-backend/internal/domains/product/service"
	"alupro-backend/internal/domains/review/model"
	"alupro-backend/internal/domains/review/repository"
	"alupro-backend/internal/infrastructure/cache"
)

type mockRepo struct {
	repository.ReviewRepository
	created  []*model.Review
	approved []uuid.UUID
}

func (m *mockRepo) Create(_ context.Context, r *model.Review) error {
	m.created = append(m.created, r)
	return nil
}

func (m *mockRepo) Approve(_ context.Context, id uuid.UUID) (*model.Review, error) {
	m.approved = append(m.approved, id)
	return &model.Review{ID: id, IsApproved: true}, nil
}

type stubFinder struct {
	product *productModel.Product
}

func (s *stubFinder) FindBySlug(_ context.Context, slug string) (*productModel.Product, error) {
	if s.product == nil || s.product.Slug != slug {
		return nil, productModel.ErrProductNotFound
	}
	return s.product, nil
}

func setup(t *testing.T) (ReviewService, *mockRepo, *miniredis.Miniredis, *productModel.Product) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	product := &productModel.Product{ID: uuid.New(), Slug: "باب-مفصلي"}
	repo := &mockRepo{}
	return NewReviewService(repo, &stubFinder{product: product}, cache.NewRedisCache(client)), repo, mr, product
}

func TestSubmit_CreatesPendingReview(t *testing.T) {
	svc, repo, _, product := setup(t)

	review, err := svc.Submit(context.Background(), "باب-مفصلي", model.CreateReviewRequest{
		CustomerName: " منى ",
		Rating:       5,
		Comment:      "جودة ممتازة وتركيب سريع",
	})
	require.NoError(t, err)

	assert.False(t, review.IsApproved)
	assert.Equal(t, product.ID, review.ProductID)
	assert.Equal(t, "منى", review.CustomerName)
	assert.Len(t, repo.created, 1)
}

func TestSubmit_UnknownProduct(t *testing.T) {
	svc, repo, _, _ := setup(t)

	_, err := svc.Submit(context.Background(), "missing", model.CreateReviewRequest{CustomerName: "x", Rating: 4, Comment: "abc"})
	assert.ErrorIs(t, err, productModel.ErrProductNotFound)
	assert.Empty(t, repo.created)
}

func TestApprove_EvictsFeaturedCache(t *testing.T) {
	svc, repo, mr, _ := setup(t)
	require.NoError(t, mr.Set(productService.FeaturedCacheKey, "[]"))

	id := uuid.New()
	review, err := svc.Approve(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, review.IsApproved)
	assert.Equal(t, []uuid.UUID{id}, repo.approved)
	assert.False(t, mr.Exists(productService.FeaturedCacheKey))
}

func TestCreateReviewRequest_Validate(t *testing.T) {
	ok := model.CreateReviewRequest{CustomerName: "منى", Rating: 4, Comment: "ممتاز"}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Rating = 6
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Rating = 0
	assert.Error(t, bad.Validate())
}
