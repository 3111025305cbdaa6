package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/promo/model"
	"alupro-backend/internal/domains/promo/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/response"
	"alupro-backend/internal/shared/utils"
)

// AdminHandler serves /admin/promo-codes
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(promoService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: promoService}
}

// ListPromoCodes GET /admin/promo-codes?active=&search=&page=&limit=
func (h *AdminHandler) ListPromoCodes(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	filter := model.ListFilter{
		Active: utils.ParseBoolQuery(c, "active"),
		Search: strings.TrimSpace(c.Query("search")),
		Page:   page,
		Limit:  limit,
	}

	promos, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", promos, response.NewMeta(page, limit, total))
}

func (h *AdminHandler) GetPromoCode(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	promo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", promo)
}

func (h *AdminHandler) CreatePromoCode(c *gin.Context) {
	var req model.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	promo, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم إنشاء كود البرومو بنجاح", promo)
}

func (h *AdminHandler) UpdatePromoCode(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	var req model.UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	promo, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم تحديث كود البرومو بنجاح", promo)
}

func (h *AdminHandler) DeletePromoCode(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم حذف كود البرومو", nil)
}

// TogglePromoCode PATCH /admin/promo-codes/:id/toggle
func (h *AdminHandler) TogglePromoCode(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	promo, err := h.service.Toggle(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	message := "تم إيقاف كود البرومو"
	if promo.IsActive {
		message = "تم تفعيل كود البرومو"
	}
	response.Success(c, http.StatusOK, message, promo)
}
