package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-cms/internal/container"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

const healthPingTimeout = time.Second

// healthModule serves GET /api/health. It reports which optional
// integrations are wired and answers 200 as long as the process is up; a
// failing Redis only shows as "down".
func healthModule(c *container.Container) Module {
	return ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/health", func(ctx *gin.Context) {
			response.Success(ctx, http.StatusOK, healthReport(ctx.Request.Context(), c), "ok", nil)
		})
	})
}

func healthReport(ctx context.Context, c *container.Container) gin.H {
	status := func(wired bool) string {
		if wired {
			return "enabled"
		}
		return "disabled"
	}
	redisStatus := "disabled"
	if c.Redis != nil {
		pctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()
		redisStatus = "up"
		if err := c.Redis.Ping(pctx).Err(); err != nil {
			redisStatus = "down"
		}
	}
	return gin.H{
		"store":     c.Config.StoreDriver,
		"redis":     redisStatus,
		"search":    status(c.PostIndex != nil),
		"storage":   status(c.GCS != nil),
		"mail_jobs": status(c.Rabbit != nil),
	}
}
