package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-portfolio-cms/internal/interface/http"
)

// BlogModule
// Public: GET /api/blog, GET /api/blog/search, GET /api/blog/:slug
// Admin: /api/admin/blog CRUD by id, drafts included
type BlogModule struct {
	Handler *handlers.BlogHandler
	Admin   []gin.HandlerFunc
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/blog", m.Handler.List)
	rg.GET("/blog/search", m.Handler.Search)
	rg.GET("/blog/:slug", m.Handler.GetBySlug)

	admin := rg.Group("/admin/blog", m.Admin...)
	{
		admin.GET("", m.Handler.AdminList)
		admin.POST("", m.Handler.Create)
		admin.GET("/:id", m.Handler.AdminGet)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
