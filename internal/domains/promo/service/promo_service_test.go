package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/config"
	"alupro-backend/internal/domains/promo/model"
	infraCache "alupro-backend/internal/infrastructure/cache"
)

// mockRepository implements repository.PromoRepository
type mockRepository struct {
	promos       map[string]*model.PromoCode
	findErr      error
	findCalls    int
	incremented  []uuid.UUID
	deactivated  []string
	setActiveArg *bool
}

func newMockRepository(promos ...*model.PromoCode) *mockRepository {
	m := &mockRepository{promos: map[string]*model.PromoCode{}}
	for _, p := range promos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		m.promos[p.Code] = p
	}
	return m
}

func (m *mockRepository) byID(id uuid.UUID) (*model.PromoCode, error) {
	for _, p := range m.promos {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrPromoNotFound
}

func (m *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*model.PromoCode, error) {
	return m.byID(id)
}

func (m *mockRepository) FindByCode(_ context.Context, code string) (*model.PromoCode, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.promos[code]
	if !ok {
		return nil, model.ErrPromoNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepository) List(context.Context, model.ListFilter) ([]*model.PromoCode, int, error) {
	out := make([]*model.PromoCode, 0, len(m.promos))
	for _, p := range m.promos {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(_ context.Context, p *model.PromoCode) error {
	if _, exists := m.promos[p.Code]; exists {
		return model.ErrPromoDuplicate
	}
	p.ID = uuid.New()
	m.promos[p.Code] = p
	return nil
}

func (m *mockRepository) Update(_ context.Context, p *model.PromoCode) error {
	for code, existing := range m.promos {
		if existing.ID == p.ID {
			delete(m.promos, code)
		}
	}
	m.promos[p.Code] = p
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	for code, p := range m.promos {
		if p.ID == id {
			delete(m.promos, code)
			return nil
		}
	}
	return model.ErrPromoNotFound
}

func (m *mockRepository) SetActive(_ context.Context, id uuid.UUID, active bool) (*model.PromoCode, error) {
	m.setActiveArg = &active
	for _, p := range m.promos {
		if p.ID == id {
			p.IsActive = active
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrPromoNotFound
}

func (m *mockRepository) DeactivateExpired(_ context.Context, now time.Time) ([]string, error) {
	var codes []string
	for _, p := range m.promos {
		if p.IsActive && p.IsExpired(now) {
			p.IsActive = false
			codes = append(codes, p.Code)
		}
	}
	m.deactivated = codes
	return codes, nil
}

func (m *mockRepository) LockByCode(ctx context.Context, _ pgx.Tx, code string) (*model.PromoCode, error) {
	return m.FindByCode(ctx, code)
}

func (m *mockRepository) IncrementUsage(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	m.incremented = append(m.incremented, id)
	for _, p := range m.promos {
		if p.ID == id {
			p.UsedCount++
		}
	}
	return nil
}

func setupService(t *testing.T, cfg config.PromoConfig, promos ...*model.PromoCode) (*promoService, *mockRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Minute
	}

	repo := newMockRepository(promos...)
	svc := NewPromoService(repo, infraCache.NewRedisCache(client), cfg).(*promoService)
	return svc, repo, mr
}

func welcome10() *model.PromoCode {
	return &model.PromoCode{
		Code:          "WELCOME10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: d("10"),
		MinimumAmount: dp("100"),
		IsActive:      true,
	}
}

func TestValidate_NormalizesAndCaches(t *testing.T) {
	svc, repo, mr := setupService(t, config.PromoConfig{}, welcome10())
	ctx := context.Background()

	res, err := svc.Validate(ctx, "  welcome10 ", d("1000"))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(res.DiscountAmount))
	assert.True(t, mr.Exists("promo:code:WELCOME10"))

	_, err = svc.Validate(ctx, "WELCOME10", d("1000"))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls, "second lookup served from cache")
}

func TestValidate_Errors(t *testing.T) {
	inactive := welcome10()
	inactive.Code = "OLD"
	inactive.IsActive = false

	svc, _, _ := setupService(t, config.PromoConfig{}, welcome10(), inactive)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "   ", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoRequired)

	_, err = svc.Validate(ctx, "NOPE", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoInvalid)

	_, err = svc.Validate(ctx, "OLD", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoInvalid)

	_, err = svc.Validate(ctx, "WELCOME10", d("50"))
	assert.ErrorIs(t, err, model.ErrPromoMinNotMet)
}

func TestValidate_BackendFailure(t *testing.T) {
	svc, repo, _ := setupService(t, config.PromoConfig{})
	repo.findErr = errors.New("connection refused")

	_, err := svc.Validate(context.Background(), "WELCOME10", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoBackend)
}

func TestValidate_OfflineFallback(t *testing.T) {
	svc, repo, _ := setupService(t, config.PromoConfig{OfflineFallback: true})
	repo.findErr = errors.New("connection refused")
	ctx := context.Background()

	res, err := svc.Validate(ctx, "welcome10", d("1000"))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(res.DiscountAmount))

	// same minimum rule as the server path
	_, err = svc.Validate(ctx, "SAVE500", d("100"))
	assert.ErrorIs(t, err, model.ErrPromoMinNotMet)

	// unknown codes still surface the outage
	_, err = svc.Validate(ctx, "OTHER", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoBackend)
}

func TestValidate_OfflineCatalogIgnoredWhenRepositoryAnswers(t *testing.T) {
	svc, _, _ := setupService(t, config.PromoConfig{OfflineFallback: true})

	_, err := svc.Validate(context.Background(), "WELCOME10", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoInvalid)
}

func TestRedeem_IncrementsWithoutTouchingCache(t *testing.T) {
	promo := welcome10()
	svc, repo, mr := setupService(t, config.PromoConfig{}, promo)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "WELCOME10", d("1000"))
	require.NoError(t, err)
	require.True(t, mr.Exists("promo:code:WELCOME10"))

	res, err := svc.Redeem(ctx, nil, "welcome10", d("1000"))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(res.DiscountAmount))
	assert.Equal(t, []uuid.UUID{promo.ID}, repo.incremented)

	// Still uncommitted: the cached row stays until EvictCode
	assert.True(t, mr.Exists("promo:code:WELCOME10"))

	svc.EvictCode(ctx, " welcome10 ")
	assert.False(t, mr.Exists("promo:code:WELCOME10"))
}

func TestRedeem_EnforcedMaxUses(t *testing.T) {
	maxUses := 1
	promo := welcome10()
	promo.MaxUses = &maxUses

	svc, repo, _ := setupService(t, config.PromoConfig{EnforceMaxUses: true}, promo)
	ctx := context.Background()

	_, err := svc.Redeem(ctx, nil, "WELCOME10", d("1000"))
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, nil, "WELCOME10", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoExhausted)
	assert.Len(t, repo.incremented, 1)
}

func TestRedeem_UnenforcedStillCounts(t *testing.T) {
	maxUses := 1
	promo := welcome10()
	promo.MaxUses = &maxUses

	svc, repo, _ := setupService(t, config.PromoConfig{}, promo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Redeem(ctx, nil, "WELCOME10", d("1000"))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, repo.promos["WELCOME10"].UsedCount)
}

func TestToggle_FlipsAndEvicts(t *testing.T) {
	promo := welcome10()
	svc, repo, mr := setupService(t, config.PromoConfig{}, promo)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "WELCOME10", d("1000"))
	require.NoError(t, err)

	updated, err := svc.Toggle(ctx, promo.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	require.NotNil(t, repo.setActiveArg)
	assert.False(t, *repo.setActiveArg)
	assert.False(t, mr.Exists("promo:code:WELCOME10"))

	_, err = svc.Validate(ctx, "WELCOME10", d("1000"))
	assert.ErrorIs(t, err, model.ErrPromoInvalid)
}

func TestUpdate_RevalidatesMergedEntity(t *testing.T) {
	promo := &model.PromoCode{
		Code:          "FLAT",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: d("150"),
		IsActive:      true,
	}
	svc, _, _ := setupService(t, config.PromoConfig{}, promo)

	// switching to percentage keeps value 150, which is over 100%
	pct := model.DiscountTypePercentage
	_, err := svc.Update(context.Background(), promo.ID, model.UpdatePromoRequest{DiscountType: &pct})
	require.Error(t, err)
}

func TestDeactivateExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	expired := welcome10()
	expired.ExpiresAt = &past

	svc, repo, _ := setupService(t, config.PromoConfig{}, expired)

	n, err := svc.DeactivateExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"WELCOME10"}, repo.deactivated)
}
