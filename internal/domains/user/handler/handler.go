package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/user/model"
	"alupro-backend/internal/domains/user/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
	"alupro-backend/internal/shared/utils"
)

type Handler struct {
	service service.UserService
}

func NewHandler(userService service.UserService) *Handler {
	return &Handler{service: userService}
}

// ========================================
// AUTH
// ========================================

// Register creates a customer account
//
// @Summary  Register
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body model.RegisterRequest true "account"
// @Success  201 {object} response.Response{data=model.AuthResponse}
// @Failure  409 {object} response.Response
// @Router   /v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم إنشاء الحساب بنجاح", result)
}

// Login
//
// @Summary  Login
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body model.LoginRequest true "credentials"
// @Success  200 {object} response.Response{data=model.AuthResponse}
// @Failure  401 {object} response.Response
// @Failure  429 {object} response.Response
// @Router   /v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم تسجيل الدخول بنجاح", result)
}

// Refresh - POST /v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", result)
}

// Me - GET /v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, middleware.MsgUnauthenticated)
		return
	}

	u, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", u)
}

// ========================================
// ADMIN
// ========================================

// ListUsers - GET /v1/admin/users?role=&search=
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := utils.ParsePagination(c)
	filter := model.ListFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", users, response.NewMeta(page, limit, total))
}

// UpdateRole - PATCH /v1/admin/users/:id/role
func (h *Handler) UpdateRole(c *gin.Context) {
	targetID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	var req model.UpdateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	actorID, _ := middleware.GetUserID(c)
	u, err := h.service.UpdateRole(c.Request.Context(), actorID, middleware.GetRole(c), targetID, req.Role)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم تحديث الدور", u)
}

type validatable interface {
	Validate() error
}

func bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return false
	}
	return true
}
