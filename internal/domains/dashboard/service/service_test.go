package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderModel "alupro-backend/internal/domains/order/model"
	"alupro-backend/internal/infrastructure/cache"
)

type stubOrders struct {
	calls  int
	recent []*orderModel.Order
	err    error
}

func (s *stubOrders) CountByStatus(context.Context) ([]orderModel.StatusCount, error) {
	s.calls++
	return []orderModel.StatusCount{
		{Status: orderModel.StatusPending, Count: 3},
		{Status: orderModel.StatusDelivered, Count: 2},
		{Status: orderModel.StatusCancelled, Count: 1},
	}, nil
}

func (s *stubOrders) Revenue(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("15400.50"), s.err
}

func (s *stubOrders) ListOrders(_ context.Context, filter orderModel.ListFilter) ([]*orderModel.Order, int, error) {
	if filter.Limit < len(s.recent) {
		return s.recent[:filter.Limit], len(s.recent), nil
	}
	return s.recent, len(s.recent), nil
}

func count(n int) Counter {
	return func(context.Context) (int, error) { return n, nil }
}

func newService(t *testing.T, orders *stubOrders) (DashboardService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDashboardService(orders, count(4), count(2), count(17), cache.NewRedisCache(client)), mr
}

func TestSummary(t *testing.T) {
	orders := &stubOrders{}
	for i := 0; i < 7; i++ {
		orders.recent = append(orders.recent, &orderModel.Order{ID: uuid.New(), Status: orderModel.StatusPending, CreatedAt: time.Now()})
	}
	svc, mr := newService(t, orders)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, got.TotalOrders)
	assert.Equal(t, "15400.5", got.Revenue.String())
	assert.Equal(t, 4, got.UnreadMessages)
	assert.Equal(t, 2, got.PendingReviews)
	assert.Equal(t, 17, got.ActiveProducts)
	assert.Len(t, got.RecentOrders, RecentOrdersLimit)
	assert.Equal(t, "قيد المراجعة", got.RecentOrders[0].StatusLabel)
	assert.True(t, mr.Exists(summaryCacheKey))

	// served from cache
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, orders.calls)
}

func TestSummary_PropagatesErrors(t *testing.T) {
	svc, mr := newService(t, &stubOrders{err: errors.New("db down")})

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
	assert.False(t, mr.Exists(summaryCacheKey))
}
