package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/config"
	cartModel "alupro-backend/internal/domains/cart/model"
	"alupro-backend/internal/domains/order/model"
	productModel "alupro-backend/internal/domains/product/model"
	promoModel "alupro-backend/internal/domains/promo/model"
	promoService "alupro-backend/internal/domains/promo/service"
	"alupro-backend/internal/infrastructure/events"
	"alupro-backend/internal/shared"
)

// =====================================================
// FAKES
// =====================================================

// fakeTx records outbox inserts; any other pgx.Tx method panics
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	events     []string
}

func (f *fakeTx) Commit(context.Context) error   { f.committed = true; return nil }
func (f *fakeTx) Rollback(context.Context) error { f.rolledBack = true; return nil }

// Exec only sees events.Insert: args are aggregate id, event type, payload
func (f *fakeTx) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	f.events = append(f.events, args[1].(string))
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

type mockOrderRepo struct {
	tx        *fakeTx
	orders    map[uuid.UUID]*model.Order
	history   []model.StatusHistory
	clashes   int // CreateWithTx reports a taken number this many times
	numbers   []string
	beginErr  error
	updatedAt time.Time
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		tx:        &fakeTx{},
		orders:    map[uuid.UUID]*model.Order{},
		updatedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (m *mockOrderRepo) Begin(context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func (m *mockOrderRepo) CreateWithTx(_ context.Context, _ pgx.Tx, o *model.Order) error {
	m.numbers = append(m.numbers, o.OrderNumber)
	if m.clashes > 0 {
		m.clashes--
		return model.ErrOrderNumberTaken
	}
	o.CreatedAt = m.updatedAt
	o.UpdatedAt = m.updatedAt
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepo) LockByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*model.Order, error) {
	return m.FindByID(context.Background(), id)
}

func (m *mockOrderRepo) UpdateStatusWithTx(_ context.Context, _ pgx.Tx, id uuid.UUID, status model.Status) (time.Time, error) {
	o, ok := m.orders[id]
	if !ok {
		return time.Time{}, model.ErrOrderNotFound
	}
	o.Status = status
	return m.updatedAt, nil
}

func (m *mockOrderRepo) CreateHistoryWithTx(_ context.Context, _ pgx.Tx, h *model.StatusHistory) error {
	h.ID = int64(len(m.history) + 1)
	m.history = append(m.history, *h)
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) List(context.Context, model.ListFilter) ([]*model.Order, int, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) Each(_ context.Context, _ model.ListFilter, fn func(*model.Order) error) error {
	for _, o := range m.orders {
		if err := fn(o); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockOrderRepo) ListHistory(context.Context, uuid.UUID) ([]model.StatusHistory, error) {
	return m.history, nil
}

func (m *mockOrderRepo) CountByStatus(context.Context) (map[model.Status]int, error) {
	counts := map[model.Status]int{}
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (m *mockOrderRepo) Revenue(context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range m.orders {
		if o.Status != model.StatusCancelled {
			total = total.Add(o.Total)
		}
	}
	return total, nil
}

// stubPromos only implements Redeem and EvictCode, other methods panic through the nil interface
type stubPromos struct {
	promoService.ServiceInterface
	result   *promoModel.ValidationResult
	err      error
	redeemed []string

	tx                 *fakeTx
	evicted            []string
	evictedAfterCommit bool
}

func (s *stubPromos) Redeem(_ context.Context, _ pgx.Tx, code string, _ decimal.Decimal) (*promoModel.ValidationResult, error) {
	s.redeemed = append(s.redeemed, code)
	return s.result, s.err
}

func (s *stubPromos) EvictCode(_ context.Context, code string) {
	s.evicted = append(s.evicted, code)
	s.evictedAfterCommit = s.tx != nil && s.tx.committed
}

type stubProducts struct {
	products []*productModel.Product
}

func (s *stubProducts) FindByIDs(context.Context, []uuid.UUID) ([]*productModel.Product, error) {
	return s.products, nil
}

type enqueued struct {
	taskType string
	payload  interface{}
}

type recordingEnqueuer struct {
	tasks []enqueued
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, taskType string, payload interface{}, _ ...asynq.Option) error {
	r.tasks = append(r.tasks, enqueued{taskType, payload})
	return nil
}

func (r *recordingEnqueuer) types() []string {
	out := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.taskType)
	}
	return out
}

// =====================================================
// FIXTURES
// =====================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

type fixture struct {
	svc      *orderService
	repo     *mockOrderRepo
	promos   *stubPromos
	enqueuer *recordingEnqueuer
	product  *productModel.Product
}

func newFixture(strict bool) *fixture {
	product := &productModel.Product{
		ID:       uuid.New(),
		Name:     "مطبخ ألوميتال مودرن",
		Category: productModel.CategoryKitchens,
		Price:    dec("1000"),
		Images:   []string{"https://cdn.test/k.jpg"},
		IsActive: true,
	}

	f := &fixture{
		repo:     newMockOrderRepo(),
		promos:   &stubPromos{},
		enqueuer: &recordingEnqueuer{},
		product:  product,
	}
	f.svc = NewOrderService(
		f.repo,
		&stubProducts{products: []*productModel.Product{product}},
		f.promos,
		f.enqueuer,
		config.CheckoutConfig{TaxRate: dec("0.14"), ShippingFee: dec("50")},
		config.OrderConfig{StrictTransitions: strict, NotifyEmail: "sales@alupro.test"},
	).(*orderService)
	f.promos.tx = f.repo.tx
	return f
}

// request for 2 × 1000: subtotal 2000, tax 280, shipping 50
func (f *fixture) request() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		CustomerName:    " أحمد علي ",
		CustomerEmail:   "Ahmed@Example.com",
		CustomerPhone:   "01012345678",
		CustomerAddress: "15 شارع التحرير، القاهرة",
		Items: []cartModel.CartItem{
			{ProductID: f.product.ID, Name: "old name", Price: dec("1000"), Quantity: 2},
		},
		Subtotal: dec("2000"),
		Tax:      dec("280"),
		Shipping: dec("50"),
		Total:    dec("2330"),
	}
}

func (f *fixture) seed(status model.Status) *model.Order {
	owner := uuid.New()
	o := &model.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-1714557600000-7",
		UserID:        &owner,
		CustomerName:  "سارة",
		CustomerEmail: "sara@example.com",
		Status:        status,
	}
	f.repo.orders[o.ID] = o
	return o
}

// =====================================================
// CREATE ORDER
// =====================================================

func TestCreateOrder_WithPromo(t *testing.T) {
	f := newFixture(false)
	f.promos.result = &promoModel.ValidationResult{Code: "WELCOME10", DiscountAmount: dec("200")}

	code := "welcome10"
	req := f.request()
	req.PromoCode = &code
	req.DiscountAmount = decPtr("200")
	req.Total = dec("2130")

	userID := uuid.New()
	order, err := f.svc.CreateOrder(context.Background(), &userID, req)
	require.NoError(t, err)

	// Totals
	assert.Equal(t, "2000.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "280.00", order.Tax.StringFixed(2))
	assert.Equal(t, "50.00", order.Shipping.StringFixed(2))
	assert.Equal(t, "200.00", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, "2130.00", order.Total.StringFixed(2))
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "WELCOME10", *order.PromoCode)
	assert.Equal(t, []string{"welcome10"}, f.promos.redeemed)
	assert.Equal(t, []string{"WELCOME10"}, f.promos.evicted)
	assert.True(t, f.promos.evictedAfterCommit)

	// Order fields
	assert.Equal(t, model.StatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, "أحمد علي", order.CustomerName)
	assert.Equal(t, "ahmed@example.com", order.CustomerEmail)
	assert.Equal(t, &userID, order.UserID)

	// Snapshot adopts catalog values
	require.Len(t, order.Items, 1)
	assert.Equal(t, f.product.Name, order.Items[0].Name)
	assert.Equal(t, "kitchens", order.Items[0].Category)
	assert.Equal(t, "https://cdn.test/k.jpg", order.Items[0].Image)

	// Same transaction: initial history + outbox
	assert.True(t, f.repo.tx.committed)
	require.Len(t, f.repo.history, 1)
	assert.Nil(t, f.repo.history[0].FromStatus)
	assert.Equal(t, model.StatusPending, f.repo.history[0].ToStatus)
	assert.Equal(t, []string{events.EventOrderCreated}, f.repo.tx.events)

	// Emails after commit
	assert.Equal(t, []string{shared.TypeSendOrderConfirmation, shared.TypeSendOrderAdminNotice}, f.enqueuer.types())
	confirmation := f.enqueuer.tasks[0].payload.(shared.OrderEmailPayload)
	assert.Empty(t, confirmation.To)
	assert.Equal(t, "2130.00", confirmation.Total)
	assert.Equal(t, "WELCOME10", confirmation.PromoCode)
	notice := f.enqueuer.tasks[1].payload.(shared.OrderEmailPayload)
	assert.Equal(t, "sales@alupro.test", notice.To)
}

func TestCreateOrder_GuestWithoutPromo(t *testing.T) {
	f := newFixture(false)

	order, err := f.svc.CreateOrder(context.Background(), nil, f.request())
	require.NoError(t, err)

	assert.Nil(t, order.UserID)
	assert.Nil(t, order.PromoCode)
	assert.True(t, order.DiscountAmount.IsZero())
	assert.Equal(t, "2330.00", order.Total.StringFixed(2))
	assert.Empty(t, f.promos.redeemed)
	assert.Empty(t, f.promos.evicted)
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	f := newFixture(false)

	req := f.request()
	req.Total = dec("2000")

	_, err := f.svc.CreateOrder(context.Background(), nil, req)
	require.ErrorIs(t, err, model.ErrTotalMismatch)

	assert.True(t, f.repo.tx.rolledBack)
	assert.False(t, f.repo.tx.committed)
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.enqueuer.tasks)
}

func TestCreateOrder_ToleratesRounding(t *testing.T) {
	f := newFixture(false)

	req := f.request()
	req.Total = dec("2330.009")

	_, err := f.svc.CreateOrder(context.Background(), nil, req)
	assert.NoError(t, err)
}

func TestCreateOrder_DiscountWithoutPromo(t *testing.T) {
	f := newFixture(false)

	req := f.request()
	req.DiscountAmount = decPtr("100")

	_, err := f.svc.CreateOrder(context.Background(), nil, req)
	assert.ErrorIs(t, err, model.ErrTotalMismatch)
	assert.Empty(t, f.repo.orders)
}

func TestCreateOrder_PromoRejectedRollsBack(t *testing.T) {
	f := newFixture(false)
	f.promos.err = promoModel.ErrPromoExpired

	code := "OLD"
	req := f.request()
	req.PromoCode = &code

	_, err := f.svc.CreateOrder(context.Background(), nil, req)
	assert.ErrorIs(t, err, promoModel.ErrPromoExpired)
	assert.True(t, f.repo.tx.rolledBack)
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.promos.evicted)
}

func TestCreateOrder_RolledBackRedemptionKeepsCache(t *testing.T) {
	f := newFixture(false)
	f.promos.result = &promoModel.ValidationResult{Code: "WELCOME10", DiscountAmount: dec("200")}

	code := "WELCOME10"
	req := f.request()
	req.PromoCode = &code
	req.DiscountAmount = decPtr("200")
	req.Total = dec("9999")

	_, err := f.svc.CreateOrder(context.Background(), nil, req)
	require.ErrorIs(t, err, model.ErrTotalMismatch)
	assert.Equal(t, []string{"WELCOME10"}, f.promos.redeemed)
	assert.True(t, f.repo.tx.rolledBack)
	assert.Empty(t, f.promos.evicted)
}

func TestCreateOrder_CatalogChecks(t *testing.T) {
	t.Run("price changed", func(t *testing.T) {
		f := newFixture(false)
		f.product.DiscountPrice = decPtr("900")

		_, err := f.svc.CreateOrder(context.Background(), nil, f.request())
		assert.ErrorIs(t, err, model.ErrPriceChanged)
		assert.False(t, f.repo.tx.committed)
	})

	t.Run("inactive product", func(t *testing.T) {
		f := newFixture(false)
		f.product.IsActive = false

		_, err := f.svc.CreateOrder(context.Background(), nil, f.request())
		assert.ErrorIs(t, err, model.ErrProductUnavailable)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture(false)
		req := f.request()
		req.Items[0].ProductID = uuid.New()

		_, err := f.svc.CreateOrder(context.Background(), nil, req)
		assert.ErrorIs(t, err, model.ErrProductUnavailable)
	})

	t.Run("empty", func(t *testing.T) {
		f := newFixture(false)
		req := f.request()
		req.Items = nil

		_, err := f.svc.CreateOrder(context.Background(), nil, req)
		assert.ErrorIs(t, err, model.ErrEmptyOrder)
	})
}

func TestCreateOrder_RegeneratesTakenNumber(t *testing.T) {
	f := newFixture(false)
	f.repo.clashes = 2

	order, err := f.svc.CreateOrder(context.Background(), nil, f.request())
	require.NoError(t, err)

	assert.Len(t, f.repo.numbers, 3)
	assert.Equal(t, f.repo.numbers[2], order.OrderNumber)
	assert.True(t, f.repo.tx.committed)
}

func TestCreateOrder_GivesUpAfterMaxAttempts(t *testing.T) {
	f := newFixture(false)
	f.repo.clashes = maxOrderNumberAttempts

	_, err := f.svc.CreateOrder(context.Background(), nil, f.request())
	assert.ErrorIs(t, err, model.ErrCreateFailed)
	assert.Len(t, f.repo.numbers, maxOrderNumberAttempts)
	assert.Empty(t, f.enqueuer.tasks)
}

// =====================================================
// UPDATE STATUS
// =====================================================

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	f := newFixture(false)
	o := f.seed(model.StatusConfirmed)

	got, err := f.svc.UpdateStatus(context.Background(), o.ID, uuid.New(),
		model.UpdateStatusRequest{Status: model.StatusConfirmed})
	require.NoError(t, err)

	assert.Equal(t, model.StatusConfirmed, got.Status)
	assert.Empty(t, f.repo.history)
	assert.Empty(t, f.repo.tx.events)
	assert.Empty(t, f.enqueuer.tasks)
}

func TestUpdateStatus_RealChange(t *testing.T) {
	f := newFixture(false)
	o := f.seed(model.StatusPending)
	admin := uuid.New()

	got, err := f.svc.UpdateStatus(context.Background(), o.ID, admin,
		model.UpdateStatusRequest{Status: model.StatusShipped, Note: " مع شركة الشحن "})
	require.NoError(t, err)

	assert.Equal(t, model.StatusShipped, got.Status)
	assert.Equal(t, model.StatusShipped.Label(), got.StatusLabel)
	assert.Equal(t, f.repo.updatedAt, got.UpdatedAt)

	require.Len(t, f.repo.history, 1)
	h := f.repo.history[0]
	require.NotNil(t, h.FromStatus)
	assert.Equal(t, model.StatusPending, *h.FromStatus)
	assert.Equal(t, model.StatusShipped, h.ToStatus)
	assert.Equal(t, &admin, h.ChangedBy)
	assert.Equal(t, "مع شركة الشحن", h.Note)

	assert.Equal(t, []string{events.EventOrderStatusChanged}, f.repo.tx.events)
	assert.True(t, f.repo.tx.committed)

	require.Equal(t, []string{shared.TypeSendOrderStatusUpdate}, f.enqueuer.types())
	payload := f.enqueuer.tasks[0].payload.(shared.OrderStatusEmailPayload)
	assert.Equal(t, "قيد المراجعة", payload.FromStatus)
	assert.Equal(t, "تم الشحن", payload.ToStatus)
	assert.Equal(t, "sara@example.com", payload.CustomerEmail)
}

func TestUpdateStatus_PermissiveAllowsBackward(t *testing.T) {
	f := newFixture(false)
	o := f.seed(model.StatusDelivered)

	got, err := f.svc.UpdateStatus(context.Background(), o.ID, uuid.New(),
		model.UpdateStatusRequest{Status: model.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestUpdateStatus_StrictRejects(t *testing.T) {
	f := newFixture(true)
	o := f.seed(model.StatusDelivered)

	_, err := f.svc.UpdateStatus(context.Background(), o.ID, uuid.New(),
		model.UpdateStatusRequest{Status: model.StatusPending})
	assert.ErrorIs(t, err, model.ErrTransitionNotAllowed)

	assert.Equal(t, model.StatusDelivered, f.repo.orders[o.ID].Status)
	assert.Empty(t, f.repo.history)
	assert.True(t, f.repo.tx.rolledBack)
	assert.Empty(t, f.enqueuer.tasks)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(),
		model.UpdateStatusRequest{Status: model.StatusShipped})
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

// =====================================================
// READ
// =====================================================

func TestGetOrder_Access(t *testing.T) {
	f := newFixture(false)
	o := f.seed(model.StatusPending)
	ctx := context.Background()

	_, err := f.svc.GetOrder(ctx, o.ID, uuid.New(), false)
	assert.ErrorIs(t, err, model.ErrOrderForbidden)

	got, err := f.svc.GetOrder(ctx, o.ID, *o.UserID, false)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.svc.GetOrder(ctx, o.ID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestCountByStatus_ZeroFilled(t *testing.T) {
	f := newFixture(false)
	f.seed(model.StatusPending)
	f.seed(model.StatusPending)
	f.seed(model.StatusShipped)

	counts, err := f.svc.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(model.AllStatuses))

	assert.Equal(t, model.StatusPending, counts[0].Status)
	assert.Equal(t, 2, counts[0].Count)
	for _, c := range counts {
		if c.Status == model.StatusShipped {
			assert.Equal(t, 1, c.Count)
		}
		if c.Status == model.StatusCancelled {
			assert.Equal(t, 0, c.Count)
		}
	}
}

func TestExportOrders(t *testing.T) {
	f := newFixture(false)
	o := f.seed(model.StatusShipped)
	o.Items = []cartModel.CartItem{{Name: "باب", Quantity: 2}}
	o.Total = dec("1530.5")

	file, err := f.svc.ExportOrders(context.Background(), model.ListFilter{})
	require.NoError(t, err)
	defer file.Close()

	header, err := file.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "رقم الطلب", header)

	number, _ := file.GetCellValue(exportSheet, "A2")
	assert.Equal(t, o.OrderNumber, number)
	items, _ := file.GetCellValue(exportSheet, "G2")
	assert.Equal(t, "باب × 2", items)
	status, _ := file.GetCellValue(exportSheet, "N2")
	assert.Equal(t, "تم الشحن", status)
}

func TestRevenue_SkipsCancelled(t *testing.T) {
	f := newFixture(false)
	f.seed(model.StatusDelivered).Total = dec("1000")
	f.seed(model.StatusPending).Total = dec("250.50")
	f.seed(model.StatusCancelled).Total = dec("9999")

	total, err := f.svc.Revenue(context.Background())
	require.NoError(t, err)
	assert.True(t, dec("1250.50").Equal(total), total.String())
}
