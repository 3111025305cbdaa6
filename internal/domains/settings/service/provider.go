package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"alupro-backend/internal/domains/settings/model"
	"alupro-backend/internal/domains/settings/repository"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

const (
	ChangedChannel = "settings:changed"
	SnapshotKey    = "settings:snapshot"

	loadTimeout = 5 * time.Second
)

// Subscriber delivers pub/sub payloads until the returned close func is called
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan string, func() error, error)
}

// Provider keeps the resolved settings in memory and reloads them whenever
// a change is announced on ChangedChannel.
//
// Loads fall back from Postgres to the last good snapshot in Redis, then to
// the compiled defaults.
type Provider struct {
	repo  repository.SettingsRepository
	cache cache.Cache
	sub   Subscriber

	group singleflight.Group

	mu      sync.RWMutex
	current model.SiteSettings

	cancel context.CancelFunc
	done   chan struct{}
}

func NewProvider(repo repository.SettingsRepository, c cache.Cache, sub Subscriber) *Provider {
	return &Provider{
		repo:    repo,
		cache:   c,
		sub:     sub,
		current: model.Defaults(),
	}
}

// Start performs the initial load and subscribes to change notifications.
// A failed subscription is logged; the provider keeps serving what it loaded.
func (p *Provider) Start(ctx context.Context) {
	p.Reload(ctx)

	ctx, cancel := context.WithCancel(ctx)
	msgs, closeSub, err := p.sub.Subscribe(ctx, ChangedChannel)
	if err != nil {
		cancel()
		logger.Error("Settings change subscription failed", err)
		return
	}

	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		defer closeSub()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				p.Reload(ctx)
			}
		}
	}()

	logger.Info("Settings provider started", map[string]interface{}{"channel": ChangedChannel})
}

// Stop unsubscribes and waits for the listener to exit
func (p *Provider) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

// Current returns the last resolved settings
func (p *Provider) Current() model.SiteSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Reload refreshes the in-memory copy; concurrent callers share one load
func (p *Provider) Reload(ctx context.Context) model.SiteSettings {
	v, _, _ := p.group.Do("load", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		return p.load(ctx), nil
	})

	settings := v.(model.SiteSettings)
	p.mu.Lock()
	p.current = settings
	p.mu.Unlock()
	return settings
}

func (p *Provider) load(ctx context.Context) model.SiteSettings {
	// Tier 1: Postgres
	rows, err := p.repo.GetAll(ctx)
	if err == nil && len(rows) > 0 {
		settings := model.Resolve(rows)
		if err := p.cache.Set(ctx, SnapshotKey, settings, 0); err != nil {
			logger.Warn("Settings snapshot not saved", map[string]interface{}{"error": err.Error()})
		}
		return settings
	}
	if err != nil {
		logger.Error("Settings load from database failed", err)
	}

	// Tier 2: last good snapshot, missing fields keep their defaults
	snapshot := model.Defaults()
	found, cacheErr := p.cache.Get(ctx, SnapshotKey, &snapshot)
	if cacheErr == nil && found {
		logger.Warn("Serving settings from snapshot", nil)
		return snapshot
	}

	// Tier 3
	return model.Defaults()
}
