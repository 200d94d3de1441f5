package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/internal/container"
	handlers "github.com/oksasatya/go-portfolio-cms/internal/interface/http"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-cms/internal/router/modules"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

// Services are the application services behind the HTTP modules. cmd/main
// reuses the seeder and blog service for seeding on start.
type Services struct {
	Auth      *application.AuthService
	Portfolio *application.PortfolioService
	Blog      *application.BlogService
	Contact   *application.ContactService
	Media     *application.MediaService
	Seeder    *application.Seeder
}

func BuildServices(c *container.Container) *Services {
	cfg, log := c.Config, c.Logger
	repos := c.ContentRepos()
	return &Services{
		Auth:      application.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.AdminName, c.JWT, c.Sessions(), log),
		Portfolio: application.NewPortfolioService(repos, log),
		Blog:      application.NewBlogService(repos.BlogPosts, c.PostSearch(), log),
		Contact:   application.NewContactService(repos.Contact, c.Publisher(), cfg, log),
		Media:     application.NewMediaService(c.ImageStorage(), cfg.MaxUploadBytes, log),
		Seeder:    application.NewSeeder(repos, log),
	}
}

// InitModules wires every feature module and registers it with the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container, svc *Services) {
	cfg, log := c.Config, c.Logger
	repos := c.ContentRepos()

	r.Add(healthModule(c))

	admin := []gin.HandlerFunc{
		middleware.Auth(svc.Auth),
		middleware.RateLimit(c.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	}

	authHandler := handlers.NewAuthHandler(svc.Auth, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), log)
	r.Add(modules.NewAuthModule(authHandler, admin[0], c.Redis, cfg.LoginRateLimit, cfg.RateLimitWindow))

	r.Add(&modules.ContentModule{
		Profile:     handlers.NewProfileHandler(repos.Profile, log),
		Skills:      handlers.NewSkillHandler(repos.Skills, log),
		Experiences: handlers.NewExperienceHandler(repos.Experiences, log),
		Projects:    handlers.NewProjectHandler(repos.Projects, svc.Portfolio.Projects, log),
		Home:        handlers.NewHomeHandler(svc.Portfolio, log),
		Admin:       admin,
	})
	r.Add(&modules.BlogModule{Handler: handlers.NewBlogHandler(svc.Blog, log), Admin: admin})
	r.Add(&modules.ContactModule{
		Handler: handlers.NewContactHandler(svc.Contact, log),
		RDB:     c.Redis,
		Limit:   cfg.ContactRateLimit,
		Window:  cfg.RateLimitWindow,
	})
	r.Add(&modules.AdminToolsModule{
		Media: handlers.NewMediaHandler(svc.Media, log),
		Seed:  handlers.NewSeedHandler(svc.Seeder, svc.Blog, log),
		Admin: admin,
	})

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
