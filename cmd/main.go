package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/internal/container"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-cms/internal/router"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
	"github.com/oksasatya/go-portfolio-cms/pkg/validation"
)

const (
	seedTimeout     = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open content store")
	}
	defer c.Close()

	svc := router.BuildServices(c)
	if cfg.SeedOnStart {
		seedOnStart(ctx, svc, logger)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, c, svc)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}

// seedOnStart fills empty collections. Failures are logged and the server
// still starts; pages render their empty state until the next run.
func seedOnStart(ctx context.Context, svc *router.Services, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()
	if _, err := svc.Seeder.Run(ctx); err != nil {
		helpers.LogError(logger, "seeding on start had failures", err, nil)
	}
	if n, err := svc.Blog.Reindex(ctx); err != nil {
		helpers.LogError(logger, "blog reindex failed", err, nil)
	} else if n > 0 {
		helpers.LogInfo(logger, "blog search index rebuilt", logrus.Fields{"posts": n})
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		cc.AllowOrigins = origins
	} else {
		// no list configured: reflect any origin (local development)
		cc.AllowOriginFunc = func(string) bool { return true }
	}
	return cc
}
