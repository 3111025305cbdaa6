package service

import (
	"context"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/settings/model"
	"alupro-backend/internal/domains/settings/repository"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

type SettingsService interface {
	Get(ctx context.Context) model.SiteSettings
	Update(ctx context.Context, req model.UpdateRequest, updatedBy *uuid.UUID) (model.SiteSettings, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	cache    cache.Cache
	provider *Provider
}

func NewSettingsService(repo repository.SettingsRepository, c cache.Cache, provider *Provider) SettingsService {
	return &settingsService{repo: repo, cache: c, provider: provider}
}

func (s *settingsService) Get(_ context.Context) model.SiteSettings {
	return s.provider.Current()
}

// Update persists the overrides, reloads locally and tells the other
// instances to reload
func (s *settingsService) Update(ctx context.Context, req model.UpdateRequest, updatedBy *uuid.UUID) (model.SiteSettings, error) {
	if err := s.repo.Upsert(ctx, req, updatedBy); err != nil {
		return model.SiteSettings{}, err
	}

	settings := s.provider.Reload(ctx)

	if err := s.cache.Publish(ctx, ChangedChannel, "updated"); err != nil {
		logger.Warn("Settings change not published", map[string]interface{}{"error": err.Error()})
	}

	keys := make([]string, 0, len(req))
	for k := range req {
		keys = append(keys, k)
	}
	logger.Info("Site settings updated", map[string]interface{}{"keys": keys})

	return settings, nil
}
