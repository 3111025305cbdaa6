package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/config"
	cartModel "alupro-backend/internal/domains/cart/model"
	"alupro-backend/internal/domains/order/model"
	"alupro-backend/internal/domains/order/repository"
	promoService "alupro-backend/internal/domains/promo/service"
	"alupro-backend/internal/infrastructure/events"
	"alupro-backend/internal/shared"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/pkg/database"
	"alupro-backend/pkg/logger"
)

// maxOrderNumberAttempts bounds regeneration on order_number clashes
const maxOrderNumberAttempts = 5

type orderService struct {
	orderRepo repository.OrderRepository
	products  ProductLookup
	promos    promoService.ServiceInterface
	enqueuer  shared.TaskEnqueuer
	checkout  config.CheckoutConfig
	cfg       config.OrderConfig
	now       func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	products ProductLookup,
	promos promoService.ServiceInterface,
	enqueuer shared.TaskEnqueuer,
	checkout config.CheckoutConfig,
	cfg config.OrderConfig,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		products:  products,
		promos:    promos,
		enqueuer:  enqueuer,
		checkout:  checkout,
		cfg:       cfg,
		now:       time.Now,
	}
}

// =====================================================
// CREATE ORDER
// =====================================================

func (s *orderService) CreateOrder(ctx context.Context, userID *uuid.UUID, req model.CreateOrderRequest) (*model.Order, error) {
	// Step 1: rebuild the cart from the submitted snapshot
	cart, err := cartModel.NewCart(req.Items)
	if err != nil {
		return nil, model.ErrInvalidItem.Wrap(err)
	}
	if cart.IsEmpty() {
		return nil, model.ErrEmptyOrder
	}

	// Step 2: verify every line against the catalog
	if err := s.verifyItems(ctx, cart); err != nil {
		return nil, err
	}
	subtotal := cart.Subtotal()

	if !req.HasPromo() && req.DiscountAmount != nil && !model.WithinTolerance(*req.DiscountAmount, decimal.Zero) {
		return nil, model.TotalMismatch("discount_amount", decimal.Zero)
	}

	// Step 3: one transaction for promo redemption, order, history and outbox
	order, err := database.WithTransactionResult(ctx, s.orderRepo, func(tx pgx.Tx) (*model.Order, error) {
		discount := decimal.Zero
		var promoCode *string

		if req.HasPromo() {
			result, err := s.promos.Redeem(ctx, tx, *req.PromoCode, subtotal)
			if err != nil {
				return nil, err
			}
			discount = result.DiscountAmount
			promoCode = &result.Code
		}

		totals := model.CalculateTotals(subtotal, s.checkout.TaxRate, s.checkout.ShippingFee, discount)
		if err := checkClientTotals(req, totals); err != nil {
			return nil, err
		}

		order := &model.Order{
			ID:              uuid.New(),
			UserID:          userID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			CustomerAddress: strings.TrimSpace(req.CustomerAddress),
			Notes:           strings.TrimSpace(req.Notes),
			Items:           cart.Items,
			PromoCode:       promoCode,
			Status:          model.StatusPending,
		}
		order.ApplyTotals(totals)

		if err := s.insertOrder(ctx, tx, order); err != nil {
			return nil, err
		}

		history := &model.StatusHistory{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			ChangedBy: userID,
		}
		if err := s.orderRepo.CreateHistoryWithTx(ctx, tx, history); err != nil {
			return nil, err
		}

		event := model.CreatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Total:       order.Total,
			PromoCode:   order.PromoCode,
			ItemCount:   cart.ItemCount(),
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
		}
		if err := events.Insert(ctx, tx, order.ID.String(), events.EventOrderCreated, event); err != nil {
			return nil, err
		}

		return order, nil
	})
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		logger.ErrorWithFields("Failed to create order", err, map[string]interface{}{"email": req.CustomerEmail})
		return nil, model.ErrCreateFailed.Wrap(err)
	}

	// used_count changed, cached lookups must not outlive the commit
	if order.PromoCode != nil {
		s.promos.EvictCode(ctx, *order.PromoCode)
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.StringFixed(2),
	})

	// Step 4: emails after commit, failures never fail the order
	s.enqueueOrderEmails(ctx, order)

	return order, nil
}

// verifyItems replaces each line's name/category with the catalog values and
// rejects inactive products or prices that no longer match.
func (s *orderService) verifyItems(ctx context.Context, cart *cartModel.Cart) error {
	products, err := s.products.FindByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return model.ErrCreateFailed.Wrap(fmt.Errorf("load products: %w", err))
	}

	byID := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	for i := range cart.Items {
		item := &cart.Items[i]

		idx, ok := byID[item.ProductID]
		if !ok || !products[idx].IsActive {
			return model.ErrProductUnavailable.WithDetails(map[string]interface{}{
				"product_id": item.ProductID,
				"name":       item.Name,
			})
		}
		p := products[idx]

		price := p.EffectivePrice()
		if !model.WithinTolerance(item.Price, price) {
			return model.PriceChanged(p.Name, price)
		}

		item.Price = price
		item.Name = p.Name
		item.Category = string(p.Category)
		if item.Image == "" {
			item.Image = p.MainImage()
		}
	}
	return nil
}

type amountCheck struct {
	field  string
	client decimal.Decimal
	server decimal.Decimal
}

// checkClientTotals compares what the storefront displayed with what we charge
func checkClientTotals(req model.CreateOrderRequest, t model.Totals) error {
	checks := []amountCheck{
		{"subtotal", req.Subtotal, t.Subtotal},
		{"tax", req.Tax, t.Tax},
		{"shipping", req.Shipping, t.Shipping},
		{"total", req.Total, t.Total},
	}
	if req.DiscountAmount != nil {
		checks = append(checks, amountCheck{"discount_amount", *req.DiscountAmount, t.Discount})
	}

	for _, c := range checks {
		if !model.WithinTolerance(c.client, c.server) {
			return model.TotalMismatch(c.field, c.server)
		}
	}
	return nil
}

func (s *orderService) insertOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = model.NewOrderNumber(s.now())

		err := s.orderRepo.CreateWithTx(ctx, tx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrOrderNumberTaken) {
			return err
		}
		logger.Warn("Order number clash, regenerating", map[string]interface{}{
			"order_number": order.OrderNumber,
			"attempt":      attempt,
		})
	}
	return fmt.Errorf("no free order number after %d attempts", maxOrderNumberAttempts)
}

func (s *orderService) enqueueOrderEmails(ctx context.Context, order *model.Order) {
	payload := toEmailPayload(order)

	if err := s.enqueuer.Enqueue(ctx, shared.TypeSendOrderConfirmation, payload,
		asynq.Queue(shared.QueueHigh), asynq.MaxRetry(5)); err != nil {
		logger.ErrorWithFields("Failed to enqueue order confirmation", err, map[string]interface{}{"order_id": order.ID})
	}

	if s.cfg.NotifyEmail == "" {
		return
	}
	payload.To = s.cfg.NotifyEmail
	if err := s.enqueuer.Enqueue(ctx, shared.TypeSendOrderAdminNotice, payload,
		asynq.Queue(shared.QueueDefault), asynq.MaxRetry(3)); err != nil {
		logger.ErrorWithFields("Failed to enqueue order admin notice", err, map[string]interface{}{"order_id": order.ID})
	}
}

func toEmailPayload(order *model.Order) shared.OrderEmailPayload {
	items := make([]shared.EmailLineItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, shared.EmailLineItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price.StringFixed(2),
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}

	p := shared.OrderEmailPayload{
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Address:       order.CustomerAddress,
		Items:         items,
		Subtotal:      order.Subtotal.StringFixed(2),
		Discount:      order.DiscountAmount.StringFixed(2),
		Shipping:      order.Shipping.StringFixed(2),
		Tax:           order.Tax.StringFixed(2),
		Total:         order.Total.StringFixed(2),
	}
	if order.PromoCode != nil {
		p.PromoCode = *order.PromoCode
	}
	return p
}

// =====================================================
// READ
// =====================================================

func (s *orderService) GetOrder(ctx context.Context, id, viewerID uuid.UUID, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.IsOwnedBy(viewerID) {
		return nil, model.ErrOrderForbidden
	}
	return order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error) {
	return s.orderRepo.List(ctx, model.ListFilter{
		UserID: &userID,
		Page:   page,
		Limit:  limit,
	})
}

func (s *orderService) ListOrders(ctx context.Context, filter model.ListFilter) ([]*model.Order, int, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) GetHistory(ctx context.Context, id uuid.UUID) ([]model.StatusHistory, error) {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.orderRepo.ListHistory(ctx, id)
}

// CountByStatus returns every status, zero filled, in lifecycle order
func (s *orderService) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.StatusCount, 0, len(model.AllStatuses))
	for _, st := range model.AllStatuses {
		out = append(out, model.StatusCount{Status: st, Label: st.Label(), Count: counts[st]})
	}
	return out, nil
}

func (s *orderService) Revenue(ctx context.Context) (decimal.Decimal, error) {
	return s.orderRepo.Revenue(ctx)
}

// =====================================================
// UPDATE STATUS
// =====================================================

type statusChange struct {
	order   *model.Order
	from    model.Status
	changed bool
}

func (s *orderService) UpdateStatus(ctx context.Context, id, changedBy uuid.UUID, req model.UpdateStatusRequest) (*model.Order, error) {
	change, err := database.WithTransactionResult(ctx, s.orderRepo, func(tx pgx.Tx) (statusChange, error) {
		// 1. Lock the row
		order, err := s.orderRepo.LockByID(ctx, tx, id)
		if err != nil {
			return statusChange{}, err
		}

		// 2. Same status: nothing to write
		from := order.Status
		if from == req.Status {
			return statusChange{order: order, from: from}, nil
		}

		// 3. Transition rules
		if err := model.CanTransition(from, req.Status, s.cfg.StrictTransitions); err != nil {
			return statusChange{}, err
		}

		// 4. Update + history + outbox
		updatedAt, err := s.orderRepo.UpdateStatusWithTx(ctx, tx, id, req.Status)
		if err != nil {
			return statusChange{}, err
		}
		order.Status = req.Status
		order.StatusLabel = req.Status.Label()
		order.UpdatedAt = updatedAt

		history := &model.StatusHistory{
			OrderID:    id,
			FromStatus: &from,
			ToStatus:   req.Status,
			ChangedBy:  &changedBy,
			Note:       strings.TrimSpace(req.Note),
		}
		if err := s.orderRepo.CreateHistoryWithTx(ctx, tx, history); err != nil {
			return statusChange{}, err
		}

		event := model.StatusChangedEvent{
			OrderID:     id,
			OrderNumber: order.OrderNumber,
			FromStatus:  from,
			ToStatus:    req.Status,
			ChangedBy:   &changedBy,
			ChangedAt:   updatedAt,
		}
		if err := events.Insert(ctx, tx, id.String(), events.EventOrderStatusChanged, event); err != nil {
			return statusChange{}, err
		}

		return statusChange{order: order, from: from, changed: true}, nil
	})
	if err != nil {
		return nil, err
	}

	if !change.changed {
		return change.order, nil
	}

	logger.Info("Order status changed", map[string]interface{}{
		"order_id":   id,
		"from":       change.from,
		"to":         req.Status,
		"changed_by": changedBy,
	})

	// 5. Notify the customer
	payload := shared.OrderStatusEmailPayload{
		OrderNumber:   change.order.OrderNumber,
		CustomerName:  change.order.CustomerName,
		CustomerEmail: change.order.CustomerEmail,
		FromStatus:    change.from.Label(),
		ToStatus:      req.Status.Label(),
		Note:          strings.TrimSpace(req.Note),
	}
	if err := s.enqueuer.Enqueue(ctx, shared.TypeSendOrderStatusUpdate, payload,
		asynq.Queue(shared.QueueHigh), asynq.MaxRetry(5)); err != nil {
		logger.ErrorWithFields("Failed to enqueue status update email", err, map[string]interface{}{"order_id": id})
	}

	return change.order, nil
}
