package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"alupro-backend/internal/domains/media/model"
	"alupro-backend/internal/domains/media/service"
	"alupro-backend/internal/infrastructure/storage"
	"alupro-backend/internal/shared/middleware"
	"alupro-backend/internal/shared/response"
)

const (
	maxImageBytes = 6 << 20
	maxVideoBytes = storage.MaxVideoSize + 1<<20
)

type Handler struct {
	service service.MediaService
}

func NewHandler(mediaService service.MediaService) *Handler {
	return &Handler{service: mediaService}
}

// UploadImage - POST /v1/admin/media/images (multipart "file", optional "setting")
func (h *Handler) UploadImage(c *gin.Context) {
	data, ok := readFile(c, maxImageBytes)
	if !ok {
		return
	}

	upload, err := h.service.UploadImage(c.Request.Context(), data, c.PostForm("setting"), middleware.OptionalUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم رفع الصورة بنجاح", upload)
}

// UploadVideo - POST /v1/admin/media/videos (multipart "file", optional "setting")
func (h *Handler) UploadVideo(c *gin.Context) {
	data, ok := readFile(c, maxVideoBytes)
	if !ok {
		return
	}

	upload, err := h.service.UploadVideo(c.Request.Context(), data, c.PostForm("setting"), middleware.OptionalUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "تم رفع الفيديو بنجاح", upload)
}

func readFile(c *gin.Context, limit int64) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, err := c.FormFile("file")
	if err != nil {
		response.HandleError(c, model.ErrInvalidMedia.Wrap(err))
		return nil, false
	}
	f, err := file.Open()
	if err != nil {
		response.HandleError(c, model.ErrInvalidMedia.Wrap(err))
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.HandleError(c, model.ErrInvalidMedia.Wrap(err))
		return nil, false
	}
	return data, true
}
