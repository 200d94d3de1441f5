package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-portfolio-cms/internal/interface/http"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
)

// AuthModule wires admin sign-in.
// Public: POST /api/admin/login, POST /api/admin/refresh
// Protected: POST /api/admin/logout, GET /api/admin/me
type AuthModule struct {
	Handler    *handlers.AuthHandler
	AdminAuth  gin.HandlerFunc
	RDB        *redis.Client
	LoginLimit int
	Window     time.Duration
}

func NewAuthModule(h *handlers.AuthHandler, adminAuth gin.HandlerFunc, rdb *redis.Client, loginLimit int, window time.Duration) *AuthModule {
	return &AuthModule{Handler: h, AdminAuth: adminAuth, RDB: rdb, LoginLimit: loginLimit, Window: window}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.RDB, m.LoginLimit, m.Window, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil)

	g := rg.Group("/admin")
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := g.Group("/", m.AdminAuth)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
