package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/domains/order/model"
	"alupro-backend/internal/shared/utils"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func (r *postgresOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

const orderColumns = `
	id, order_number, user_id,
	customer_name, customer_email, customer_phone, customer_address, notes,
	items, subtotal, tax, shipping, discount_amount, promo_code, total,
	status, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID, // nullable, guest checkout
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.Notes,
		&items,
		&o.Subtotal,
		&o.Tax,
		&o.Shipping,
		&o.DiscountAmount,
		&o.PromoCode, // nullable
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	o.StatusLabel = o.Status.Label()
	return &o, nil
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateWithTx inserts the order. A clash on order_number returns
// model.ErrOrderNumberTaken without aborting the transaction.
func (r *postgresOrderRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, order_number, user_id,
			customer_name, customer_email, customer_phone, customer_address, notes,
			items, subtotal, tax, shipping, discount_amount, promo_code, total, status
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.CustomerAddress,
		order.Notes,
		items,
		order.Subtotal,
		order.Tax,
		order.Shipping,
		order.DiscountAmount,
		order.PromoCode,
		order.Total,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrOrderNumberTaken
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.StatusLabel = order.Status.Label()
	return nil
}

// =====================================================
// GET ORDER
// =====================================================

func (r *postgresOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}
	return o, err
}

// LockByID reads the order with a row lock held until tx ends,
// serializing concurrent status changes on the same order
func (r *postgresOrderRepository) LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	o, err := scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	return o, err
}

// =====================================================
// UPDATE STATUS
// =====================================================

func (r *postgresOrderRepository) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status) (time.Time, error) {
	var updatedAt time.Time
	err := tx.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		id, status,
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, model.ErrOrderNotFound
		}
		return time.Time{}, fmt.Errorf("failed to update order status: %w", err)
	}
	return updatedAt, nil
}

// =====================================================
// LIST
// =====================================================

func buildFilter(filter model.ListFilter) *utils.WhereBuilder {
	w := utils.NewWhereBuilder()
	if filter.Status != nil {
		w.Add("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		w.Add("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		w.Add("(order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ? OR customer_phone ILIKE ?)",
			like, like, like, like)
	}
	if filter.From != nil {
		w.Add("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.Add("created_at < ?", *filter.To)
	}
	return w
}

func (r *postgresOrderRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Order, int, error) {
	w := buildFilter(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, w.SQL(), w.Next(), w.Next()+1)
	args := append(w.Args(), filter.Limit, utils.Offset(filter.Page, filter.Limit))

	orders := make([]*model.Order, 0)
	err := r.query(ctx, query, args, func(o *model.Order) error {
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *postgresOrderRepository) Each(ctx context.Context, filter model.ListFilter, fn func(*model.Order) error) error {
	w := buildFilter(filter)
	query := `SELECT` + orderColumns + ` FROM orders` + w.SQL() + ` ORDER BY created_at DESC`
	return r.query(ctx, query, w.Args(), fn)
}

func (r *postgresOrderRepository) query(ctx context.Context, query string, args []interface{}, fn func(*model.Order) error) error {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return fmt.Errorf("failed to scan order: %w", err)
		}
		if err := fn(o); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate orders: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int, len(model.AllStatuses))
	for rows.Next() {
		var (
			status model.Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *postgresOrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> $1`, model.StatusCancelled,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// =====================================================
// STATUS HISTORY
// =====================================================

func (r *postgresOrderRepository) CreateHistoryWithTx(ctx context.Context, tx pgx.Tx, h *model.StatusHistory) error {
	query := `
		INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, h.OrderID, h.FromStatus, h.ToStatus, h.ChangedBy, h.Note).
		Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order status history: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) ListHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error) {
	query := `
		SELECT id, order_id, from_status, to_status, changed_by, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order status history: %w", err)
	}

	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.StatusHistory, error) {
		var h model.StatusHistory
		err := row.Scan(&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Note, &h.CreatedAt)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan order status history: %w", err)
	}
	return history, nil
}
