package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

const maxHomePosts = 10

type HomeHandler struct {
	Svc    *application.PortfolioService
	Logger *logrus.Logger
}

func NewHomeHandler(svc *application.PortfolioService, logger *logrus.Logger) *HomeHandler {
	return &HomeHandler{Svc: svc, Logger: logger}
}

// Get GET /api/home?posts=3
func (h *HomeHandler) Get(c *gin.Context) {
	posts, _ := strconv.Atoi(c.Query("posts"))
	if posts > maxHomePosts {
		posts = maxHomePosts
	}
	home, err := h.Svc.Home(c.Request.Context(), posts)
	if err != nil {
		degraded[*application.Home](c, h.Logger, err, nil, "home")
		return
	}
	response.Success(c, http.StatusOK, home, "home", nil)
}
