package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"alupro-backend/internal/domains/dashboard/model"
	orderModel "alupro-backend/internal/domains/order/model"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/logger"
)

const (
	RecentOrdersLimit = 5

	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = time.Minute
)

type OrderStats interface {
	CountByStatus(ctx context.Context) ([]orderModel.StatusCount, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	ListOrders(ctx context.Context, filter orderModel.ListFilter) ([]*orderModel.Order, int, error)
}

type Counter func(ctx context.Context) (int, error)

type DashboardService interface {
	Summary(ctx context.Context) (*model.Summary, error)
}

type dashboardService struct {
	orders         OrderStats
	unreadMessages Counter
	pendingReviews Counter
	activeProducts Counter
	cache          cache.Cache
}

func NewDashboardService(orders OrderStats, unreadMessages, pendingReviews, activeProducts Counter, c cache.Cache) DashboardService {
	return &dashboardService{
		orders:         orders,
		unreadMessages: unreadMessages,
		pendingReviews: pendingReviews,
		activeProducts: activeProducts,
		cache:          c,
	}
}

// Summary gathers every counter concurrently; the result is cached briefly
func (s *dashboardService) Summary(ctx context.Context) (*model.Summary, error) {
	var cached model.Summary
	if found, err := s.cache.Get(ctx, summaryCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	summary := &model.Summary{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.orders.CountByStatus(gctx)
		if err != nil {
			return err
		}
		summary.OrdersByStatus = counts
		for _, c := range counts {
			summary.TotalOrders += c.Count
		}
		return nil
	})
	g.Go(func() error {
		revenue, err := s.orders.Revenue(gctx)
		summary.Revenue = revenue
		return err
	})
	g.Go(func() error {
		orders, _, err := s.orders.ListOrders(gctx, orderModel.ListFilter{Page: 1, Limit: RecentOrdersLimit})
		if err != nil {
			return err
		}
		summary.RecentOrders = make([]orderModel.OrderSummary, 0, len(orders))
		for _, o := range orders {
			summary.RecentOrders = append(summary.RecentOrders, o.ToSummary())
		}
		return nil
	})
	g.Go(func() (err error) {
		summary.UnreadMessages, err = s.unreadMessages(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.PendingReviews, err = s.pendingReviews(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.ActiveProducts, err = s.activeProducts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, summaryCacheKey, summary, summaryCacheTTL); err != nil {
		logger.Warn("Dashboard cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return summary, nil
}
