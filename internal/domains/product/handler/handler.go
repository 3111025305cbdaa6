package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/product/model"
	"alupro-backend/internal/domains/product/service"
	"alupro-backend/internal/shared/apperror"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
	"alupro-backend/internal/shared/utils"
)

// maxUploadBytes bounds the multipart body; the processor enforces 5MB on the image itself
const maxUploadBytes = 6 << 20

type Handler struct {
	service service.ProductService
}

func NewHandler(productService service.ProductService) *Handler {
	return &Handler{service: productService}
}

// parseListFilter reads the catalog query: category (English or Arabic),
// featured, search, min_price, max_price, sort, page, limit
func parseListFilter(c *gin.Context) model.ListFilter {
	page, limit := utils.ParsePagination(c)

	filter := model.ListFilter{
		Featured: utils.ParseBoolQuery(c, "featured"),
		Search:   strings.TrimSpace(c.Query("search")),
		MinPrice: utils.ParseDecimalQuery(c, "min_price"),
		MaxPrice: utils.ParseDecimalQuery(c, "max_price"),
		Sort:     model.SortOption(c.DefaultQuery("sort", string(model.SortNewest))),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("category"); raw != "" {
		category := model.ParseCategory(raw)
		filter.Category = &category
	}
	return filter
}

// ListProducts - GET /v1/products
//
// @Summary  List active products
// @Tags     products
// @Produce  json
// @Success  200 {object} response.Response{data=[]model.Product}
// @Router   /v1/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	filter := parseListFilter(c)

	products, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", products, response.NewMeta(filter.Page, filter.Limit, total))
}

// FeaturedProducts - GET /v1/products/featured
func (h *Handler) FeaturedProducts(c *gin.Context) {
	products, err := h.service.Featured(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", products)
}

// GetProduct - GET /v1/products/:slug
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", product)
}

// RelatedProducts - GET /v1/products/:slug/related
func (h *Handler) RelatedProducts(c *gin.Context) {
	products, err := h.service.Related(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", products)
}

// =====================================================
// ADMIN
// =====================================================

// AdminListProducts - GET /v1/admin/products, inactive included
func (h *Handler) AdminListProducts(c *gin.Context) {
	filter := parseListFilter(c)
	filter.IncludeInactive = true

	products, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", products, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", product)
}

// CreateProduct - POST /v1/admin/products
//
// @Summary  Create product
// @Tags     admin-products
// @Accept   json
// @Produce  json
// @Param    request body model.ProductRequest true "product"
// @Success  201 {object} response.Response{data=model.Product}
// @Failure  409 {object} response.Response
// @Router   /v1/admin/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	product, err := h.service.Create(c.Request.Context(), middleware.OptionalUserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم إنشاء المنتج بنجاح", product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperror.ErrValidation.Message, nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, apperror.Validation(err))
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم تحديث المنتج بنجاح", product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "تم حذف المنتج", nil)
}

// UploadImage - POST /v1/admin/products/:id/images (multipart field "image")
func (h *Handler) UploadImage(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.HandleError(c, apperror.ErrInvalidID)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, err := c.FormFile("image")
	if err != nil {
		response.HandleError(c, model.ErrInvalidImage)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.HandleError(c, model.ErrInvalidImage.Wrap(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.HandleError(c, model.ErrInvalidImage.Wrap(err))
		return
	}

	result, err := h.service.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم رفع الصورة بنجاح", result)
}
