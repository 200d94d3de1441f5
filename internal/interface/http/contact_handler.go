package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Submit POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}
	m := &entity.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	meta := application.RequestMeta{IP: clientIP(c), UserAgent: c.GetHeader("User-Agent")}
	if err := h.Svc.Submit(c.Request.Context(), m, meta); err != nil {
		writeError(c, h.Logger, err, "send message")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": m.ID}, "message received", nil)
}
