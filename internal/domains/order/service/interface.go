package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"alupro-backend/internal/domains/order/model"
	productModel "alupro-backend/internal/domains/product/model"
)

type OrderService interface {
	// Storefront
	CreateOrder(ctx context.Context, userID *uuid.UUID, req model.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, id, viewerID uuid.UUID, isAdmin bool) (*model.Order, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error)

	// Admin
	ListOrders(ctx context.Context, filter model.ListFilter) ([]*model.Order, int, error)
	UpdateStatus(ctx context.Context, id, changedBy uuid.UUID, req model.UpdateStatusRequest) (*model.Order, error)
	GetHistory(ctx context.Context, id uuid.UUID) ([]model.StatusHistory, error)
	ExportOrders(ctx context.Context, filter model.ListFilter) (*excelize.File, error)
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

// ProductLookup is the part of the product repository checkout needs
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*productModel.Product, error)
}
