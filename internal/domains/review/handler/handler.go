package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alupro-backend/internal/domains/review/model"
	"alupro-backend/internal/domains/review/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/response"
	"alupro-backend/internal/shared/utils"
)

type Handler struct {
	service service.ReviewService
}

func NewHandler(reviewService service.ReviewService) *Handler {
	return &Handler{service: reviewService}
}

// ListProductReviews - GET /v1/products/:slug/reviews
//
// @Summary  Approved reviews of a product with the rating summary
// @Tags     reviews
// @Produce  json
// @Success  200 {object} response.Response{data=service.ProductReviews}
// @Router   /v1/products/{slug}/reviews [get]
func (h *Handler) ListProductReviews(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	result, err := h.service.ListForProduct(c.Request.Context(), c.Param("slug"), page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", result, response.NewMeta(page, limit, result.Total))
}

// SubmitReview - POST /v1/products/:slug/reviews
func (h *Handler) SubmitReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	review, err := h.service.Submit(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "شكراً لتقييمك، سيظهر بعد المراجعة", review)
}

// =====================================================
// ADMIN
// =====================================================

// AdminListReviews - GET /v1/admin/reviews?approved=&product_id=
func (h *Handler) AdminListReviews(c *gin.Context) {
	page, limit := utils.ParsePagination(c)
	filter := model.ListFilter{
		Approved: utils.ParseBoolQuery(c, "approved"),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.HandleError(c, apperror.ErrInvalidID)
			return
		}
		filter.ProductID = &id
	}

	reviews, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", reviews, response.NewMeta(page, limit, total))
}

// ApproveReview - PATCH /v1/admin/reviews/:id/approve
func (h *Handler) ApproveReview(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	review, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تمت الموافقة على التقييم", review)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم حذف التقييم", nil)
}
