package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

// multipartOverhead is allowed on top of the image size for form fields
// and boundaries.
const multipartOverhead = 1 << 16

type MediaHandler struct {
	Svc    *application.MediaService
	Logger *logrus.Logger
}

func NewMediaHandler(svc *application.MediaService, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{Svc: svc, Logger: logger}
}

// Upload POST /api/admin/images (multipart: file, folder)
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.Svc.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxBytes+multipartOverhead)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "cannot be read"})
		return
	}
	defer f.Close()

	folder := c.PostForm("folder")
	url, err := h.Svc.UploadImage(c.Request.Context(), folder, fh.Size, f)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, gin.H{"url": url}, "image uploaded", nil)
	case errors.Is(err, application.ErrStorageDisabled):
		response.Error[any](c, http.StatusServiceUnavailable, "image storage not configured", nil)
	case errors.Is(err, application.ErrUnknownFolder):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"folder": "must be one of profile, projects, blog"})
	case errors.Is(err, application.ErrUnsupportedImage):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "must be a jpeg, png, gif or webp image"})
	case errors.Is(err, application.ErrImageTooLarge):
		response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", nil)
	default:
		writeError(c, h.Logger, err, "upload image")
	}
}
