package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/contact/model"
	"alupro-backend/internal/domains/contact/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
	"alupro-backend/internal/shared/utils"
)

type Handler struct {
	service service.ContactService
}

func NewHandler(contactService service.ContactService) *Handler {
	return &Handler{service: contactService}
}

// SubmitMessage sends the contact form
//
// @Summary  Submit contact message
// @Tags     contact
// @Accept   json
// @Produce  json
// @Param    request body model.CreateMessageRequest true "message"
// @Success  201 {object} response.Response{data=model.Message}
// @Failure  429 {object} response.Response
// @Router   /v1/contact [post]
func (h *Handler) SubmitMessage(c *gin.Context) {
	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), utils.ExtractClientIP(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم إرسال رسالتك بنجاح، سنتواصل معك قريباً", msg)
}

// ListMessages - GET /v1/admin/messages?unread=true
func (h *Handler) ListMessages(c *gin.Context) {
	page, limit := utils.ParsePagination(c)
	filter := model.ListFilter{Page: page, Limit: limit}
	if unread := utils.ParseBoolQuery(c, "unread"); unread != nil {
		filter.UnreadOnly = *unread
	}

	messages, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", messages, response.NewMeta(page, limit, total))
}

// MarkRead - PATCH /v1/admin/messages/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	msg, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", msg)
}

// Reply - POST /v1/admin/messages/:id/reply
func (h *Handler) Reply(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	var req model.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	repliedBy, _ := middleware.GetUserID(c)
	msg, err := h.service.Reply(c.Request.Context(), id, repliedBy, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم إرسال الرد", msg)
}
