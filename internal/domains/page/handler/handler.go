package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/page/model"
	"alupro-backend/internal/domains/page/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
)

type Handler struct {
	service service.PageService
}

func NewHandler(pageService service.PageService) *Handler {
	return &Handler{service: pageService}
}

// GetPage - GET /v1/pages/:key
func (h *Handler) GetPage(c *gin.Context) {
	page, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", page)
}

// UpdatePage - PUT /v1/admin/pages/:key
func (h *Handler) UpdatePage(c *gin.Context) {
	var req model.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	page, err := h.service.Update(c.Request.Context(), c.Param("key"), req, middleware.OptionalUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم حفظ الصفحة", page)
}
