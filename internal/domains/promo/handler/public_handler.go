package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/promo/model"
	"alupro-backend/internal/domains/promo/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/response"
)

type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(promoService service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: promoService}
}

// ValidatePromoCode checks a code against the current cart total
//
// @Summary      Validate promo code
// @Tags         promo-codes
// @Accept       json
// @Produce      json
// @Param        request body model.ValidateRequest true "code + cartTotal"
// @Success      200 {object} response.Response{data=model.ValidationResult}
// @Failure      400 {object} response.Response
// @Failure      500 {object} response.Response
// @Router       /v1/promo-codes/validate [post]
func (h *PublicHandler) ValidatePromoCode(c *gin.Context) {
	var req model.ValidateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req.Code, req.CartTotal)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result.Message, result)
}
