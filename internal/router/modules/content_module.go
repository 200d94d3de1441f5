package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-portfolio-cms/internal/interface/http"
)

// ContentModule serves the profile, the three ordered collections and the
// home page aggregate. Reads are public, writes sit under /api/admin.
type ContentModule struct {
	Profile     *handlers.ProfileHandler
	Skills      collectionRoutes
	Experiences collectionRoutes
	Projects    collectionRoutes
	Home        *handlers.HomeHandler
	Admin       []gin.HandlerFunc
}

// collectionRoutes is the route surface of a handlers.CollectionHandler.
type collectionRoutes interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func (m *ContentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/home", m.Home.Get)
	rg.GET("/profile", m.Profile.Get)

	admin := rg.Group("/admin", m.Admin...)
	admin.PUT("/profile", m.Profile.Update)

	for path, h := range map[string]collectionRoutes{
		"/skills":      m.Skills,
		"/experiences": m.Experiences,
		"/projects":    m.Projects,
	} {
		rg.GET(path, h.List)
		admin.POST(path, h.Create)
		admin.PUT(path+"/:id", h.Update)
		admin.DELETE(path+"/:id", h.Delete)
	}
}
