package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/page/model"
	"alupro-backend/internal/domains/page/repository"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

const (
	cacheKeyPrefix = "page:"
	cacheTTL       = time.Hour
)

type PageService interface {
	Get(ctx context.Context, key string) (*model.Page, error)
	Update(ctx context.Context, key string, req model.UpdatePageRequest, updatedBy *uuid.UUID) (*model.Page, error)
}

type pageService struct {
	repo  repository.PageRepository
	cache cache.Cache
}

func NewPageService(repo repository.PageRepository, c cache.Cache) PageService {
	return &pageService{repo: repo, cache: c}
}

func cacheKey(key string) string {
	return cacheKeyPrefix + key
}

// Get reads through the cache; unsaved pages fall back to their compiled version
func (s *pageService) Get(ctx context.Context, key string) (*model.Page, error) {
	if !model.IsValidKey(key) {
		return nil, model.ErrPageNotFound
	}

	var cached model.Page
	if found, err := s.cache.Get(ctx, cacheKey(key), &cached); err == nil && found {
		return &cached, nil
	}

	page, err := s.repo.FindByKey(ctx, key)
	switch {
	case errors.Is(err, model.ErrNoContent):
		def, _ := model.Default(key)
		page = &def
	case err != nil:
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey(key), page, cacheTTL); err != nil {
		logger.Warn("Page cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return page, nil
}

func (s *pageService) Update(ctx context.Context, key string, req model.UpdatePageRequest, updatedBy *uuid.UUID) (*model.Page, error) {
	def, ok := model.Default(key)
	if !ok {
		return nil, model.ErrPageNotFound
	}

	page := &model.Page{
		Key:       key,
		Name:      strings.TrimSpace(req.Name),
		Sections:  req.Sections,
		UpdatedBy: updatedBy,
	}
	if page.Name == "" {
		page.Name = def.Name
	}

	if err := s.repo.Upsert(ctx, page); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cacheKey(key)); err != nil {
		logger.Warn("Page cache eviction failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	logger.Info("Page content updated", map[string]interface{}{"key": key})
	return page, nil
}
