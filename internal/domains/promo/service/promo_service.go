package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/config"
	"alupro-backend/internal/domains/promo/model"
	"alupro-backend/internal/domains/promo/repository"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

const cacheKeyPrefix = "promo:code:"

func cacheKey(code string) string {
	return cacheKeyPrefix + code
}

type promoService struct {
	repo  repository.PromoRepository
	cache cache.Cache
	cfg   config.PromoConfig
	now   func() time.Time
}

func NewPromoService(repo repository.PromoRepository, c cache.Cache, cfg config.PromoConfig) ServiceInterface {
	return &promoService{
		repo:  repo,
		cache: c,
		cfg:   cfg,
		now:   time.Now,
	}
}

// =====================================================
// STOREFRONT
// =====================================================

func (s *promoService) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*model.ValidationResult, error) {
	// Step 1: normalize
	code = model.NormalizeCode(code)
	if code == "" {
		return nil, model.ErrPromoRequired
	}

	// Step 2: lookup (cache → postgres)
	promo, err := s.lookup(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return nil, model.ErrPromoInvalid
		}

		// Step 2b: degraded mode
		if s.cfg.OfflineFallback {
			if offline, ok := lookupOffline(code); ok {
				logger.Warn("Promo repository unavailable, using offline catalog", map[string]interface{}{
					"code":  code,
					"error": err.Error(),
				})
				return Evaluate(offline, subtotal, s.now(), false)
			}
		}

		logger.ErrorWithFields("Promo lookup failed", err, map[string]interface{}{"code": code})
		return nil, model.ErrPromoBackend.Wrap(err)
	}

	// Step 3: rules + discount
	return Evaluate(promo, subtotal, s.now(), s.cfg.EnforceMaxUses)
}

func (s *promoService) lookup(ctx context.Context, code string) (*model.PromoCode, error) {
	var cached model.PromoCode
	found, err := s.cache.Get(ctx, cacheKey(code), &cached)
	if err != nil {
		logger.Warn("Promo cache read failed", map[string]interface{}{"code": code, "error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey(code), promo, s.cfg.CacheTTL); err != nil {
		logger.Warn("Promo cache write failed", map[string]interface{}{"code": code, "error": err.Error()})
	}
	return promo, nil
}

func (s *promoService) Redeem(ctx context.Context, tx pgx.Tx, code string, subtotal decimal.Decimal) (*model.ValidationResult, error) {
	code = model.NormalizeCode(code)
	if code == "" {
		return nil, model.ErrPromoRequired
	}

	// Step 1: lock the row, concurrent redemptions of the same code queue here
	promo, err := s.repo.LockByCode(ctx, tx, code)
	if err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return nil, model.ErrPromoInvalid
		}
		return nil, model.ErrPromoBackend.Wrap(err)
	}

	// Step 2: same rules as Validate, against the locked row
	result, err := Evaluate(promo, subtotal, s.now(), s.cfg.EnforceMaxUses)
	if err != nil {
		return nil, err
	}

	// Step 3: count the usage
	if err := s.repo.IncrementUsage(ctx, tx, promo.ID); err != nil {
		return nil, model.ErrPromoBackend.Wrap(err)
	}

	return result, nil
}

// EvictCode drops the cached lookup for code. Callers run it after the
// redeeming transaction commits, an earlier evict can be refilled with the
// pre-commit used_count.
func (s *promoService) EvictCode(ctx context.Context, code string) {
	s.evict(ctx, model.NormalizeCode(code))
}

// =====================================================
// ADMIN
// =====================================================

func (s *promoService) List(ctx context.Context, filter model.ListFilter) ([]*model.PromoCode, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *promoService) Get(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *promoService) Create(ctx context.Context, req model.CreatePromoRequest) (*model.PromoCode, error) {
	promo := req.ToEntity()
	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}

	logger.Info("Promo code created", map[string]interface{}{"code": promo.Code, "type": promo.DiscountType})
	return promo, nil
}

func (s *promoService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePromoRequest) (*model.PromoCode, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldCode := promo.Code

	req.Apply(promo)
	if err := model.ValidateEntity(promo); err != nil {
		return nil, apperror.Validation(err)
	}

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, err
	}

	s.evict(ctx, oldCode, promo.Code)
	return promo, nil
}

func (s *promoService) Delete(ctx context.Context, id uuid.UUID) error {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.evict(ctx, promo.Code)
	return nil
}

func (s *promoService) Toggle(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetActive(ctx, id, !promo.IsActive)
	if err != nil {
		return nil, err
	}

	s.evict(ctx, updated.Code)
	return updated, nil
}

// =====================================================
// SCHEDULED
// =====================================================

func (s *promoService) DeactivateExpired(ctx context.Context) (int, error) {
	codes, err := s.repo.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	s.evict(ctx, codes...)
	return len(codes), nil
}

// evict drops cached lookups; failures only delay visibility until TTL
func (s *promoService) evict(ctx context.Context, codes ...string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, 0, len(codes))
	for _, c := range codes {
		keys = append(keys, cacheKey(c))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("Promo cache eviction failed", map[string]interface{}{"codes": codes, "error": err.Error()})
	}
}
