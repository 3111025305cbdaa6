package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/dashboard/service"
	"alupro-backend/internal/shared/response"
)

type Handler struct {
	service service.DashboardService
}

func NewHandler(dashboardService service.DashboardService) *Handler {
	return &Handler{service: dashboardService}
}

// GetSummary - GET /v1/admin/dashboard
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", summary)
}
