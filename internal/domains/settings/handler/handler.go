package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/settings/model"
	"alupro-backend/internal/domains/settings/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
)

type Handler struct {
	service service.SettingsService
}

func NewHandler(settingsService service.SettingsService) *Handler {
	return &Handler{service: settingsService}
}

// GetSettings returns the resolved storefront settings
//
// @Summary  Get site settings
// @Tags     settings
// @Produce  json
// @Success  200 {object} response.Response{data=model.SiteSettings}
// @Router   /v1/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	response.Success(c, http.StatusOK, "", h.service.Get(c.Request.Context()))
}

// UpdateSettings - PUT /v1/admin/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, model.ErrInvalidSettings.Wrap(err).WithDetails(map[string]interface{}{"fields": err}))
		return
	}

	settings, err := h.service.Update(c.Request.Context(), req, middleware.OptionalUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم حفظ الإعدادات", settings)
}
