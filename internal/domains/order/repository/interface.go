package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"alupro-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================
type OrderRepository interface {
	// Begin starts a transaction; makes the repository a database.TxBeginner
	Begin(ctx context.Context) (pgx.Tx, error)

	// Writes, always inside the caller's transaction
	CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)
	UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status) (time.Time, error)
	CreateHistoryWithTx(ctx context.Context, tx pgx.Tx, h *model.StatusHistory) error

	// Reads
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Order, int, error)
	// Each streams every order matching filter (paging ignored), newest first
	Each(ctx context.Context, filter model.ListFilter, fn func(*model.Order) error) error
	ListHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error)
	CountByStatus(ctx context.Context) (map[model.Status]int, error)
	// Revenue sums the totals of every order that was not cancelled
	Revenue(ctx context.Context) (decimal.Decimal, error)
}
