package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alupro-backend/internal/domains/order/model"
	"alupro-backend/internal/domains/order/service"
	"alupro-backend/internal/shared"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
	"alupro-backend/internal/shared/utils"
	"alupro-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service service.OrderService
}

func NewHandler(orderService service.OrderService) *Handler {
	return &Handler{service: orderService}
}

// =====================================================
// STOREFRONT
// =====================================================

// CreateOrder places an order from the checkout snapshot
//
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body model.CreateOrderRequest true "checkout"
// @Success      201 {object} response.Response{data=model.Order}
// @Failure      400 {object} response.Response
// @Failure      409 {object} response.Response
// @Router       /v1/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	// Guests check out too, the bearer token is optional
	order, err := h.service.CreateOrder(c.Request.Context(), middleware.OptionalUserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم إنشاء الطلب بنجاح", order)
}

// GetMyOrders - GET /v1/orders/my
func (h *Handler) GetMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, middleware.MsgUnauthenticated)
		return
	}
	page, limit := utils.ParsePagination(c)

	orders, total, err := h.service.ListMyOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", orders, response.NewMeta(page, limit, total))
}

// GetOrder - GET /v1/orders/:id, owner or order manager
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, middleware.MsgUnauthenticated)
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id, userID, shared.CanManageOrders(middleware.GetRole(c)))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", order)
}

// =====================================================
// ADMIN
// =====================================================

// parseListFilter reads status, user_id, search, from, to (YYYY-MM-DD, to inclusive), page, limit.
// Malformed values are reported instead of silently ignored.
func parseListFilter(c *gin.Context) (model.ListFilter, error) {
	page, limit := utils.ParsePagination(c)
	filter := model.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Page:   page,
		Limit:  limit,
	}

	if raw := c.Query("status"); raw != "" {
		status := model.Status(raw)
		if !status.IsValid() {
			return filter, model.ErrInvalidStatus
		}
		filter.Status = &status
	}

	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, apperror.ErrInvalidID
		}
		filter.UserID = &id
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, apperror.ErrValidation.WithDetails(map[string]interface{}{"from": raw})
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, apperror.ErrValidation.WithDetails(map[string]interface{}{"to": raw})
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	return filter, nil
}

// ListOrders - GET /v1/admin/orders
//
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Param        status  query string false "pending|confirmed|preparing|shipped|delivered|cancelled"
// @Param        search  query string false "order number, customer name, email or phone"
// @Success      200 {object} response.Response{data=[]model.Order}
// @Router       /v1/admin/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", orders, response.NewMeta(filter.Page, filter.Limit, total))
}

// AdminGetOrder - GET /v1/admin/orders/:id
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}
	viewer, _ := middleware.GetUserID(c)

	order, err := h.service.GetOrder(c.Request.Context(), id, viewer, true)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", order)
}

// UpdateStatus moves an order to another lifecycle state
//
// @Summary      Update order status
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "order id"
// @Param        request body model.UpdateStatusRequest true "new status"
// @Success      200 {object} response.Response{data=model.Order}
// @Failure      409 {object} response.Response
// @Router       /v1/admin/orders/{id} [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, model.ErrInvalidStatus.Wrap(err))
		return
	}

	changedBy, _ := middleware.GetUserID(c)
	order, err := h.service.UpdateStatus(c.Request.Context(), id, changedBy, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم تحديث حالة الطلب", order)
}

// GetHistory - GET /v1/admin/orders/:id/history
func (h *Handler) GetHistory(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	history, err := h.service.GetHistory(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", history)
}

// ExportOrders - GET /v1/admin/orders/export, same filters as the list, no paging
func (h *Handler) ExportOrders(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	file, err := h.service.ExportOrders(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		logger.Error("Failed to stream orders export", err)
	}
}
