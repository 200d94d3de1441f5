package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-portfolio-cms/internal/interface/http"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	RDB     *redis.Client
	Limit   int
	Window  time.Duration
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.RDB, m.Limit, m.Window, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contact", limiter, m.Handler.Submit)
}
