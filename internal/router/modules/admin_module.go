package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-portfolio-cms/internal/interface/http"
)

// AdminToolsModule holds admin-only endpoints that are not content CRUD:
// image upload and on-demand seeding.
type AdminToolsModule struct {
	Media *handlers.MediaHandler
	Seed  *handlers.SeedHandler
	Admin []gin.HandlerFunc
}

func (m *AdminToolsModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", m.Admin...)
	{
		admin.POST("/images", m.Media.Upload)
		admin.POST("/seed", m.Seed.Run)
	}
}
