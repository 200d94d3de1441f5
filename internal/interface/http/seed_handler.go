package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

type SeedHandler struct {
	Seeder *application.Seeder
	Blog   *application.BlogService // reindexed after a run when set
	Logger *logrus.Logger
}

func NewSeedHandler(seeder *application.Seeder, blog *application.BlogService, logger *logrus.Logger) *SeedHandler {
	return &SeedHandler{Seeder: seeder, Blog: blog, Logger: logger}
}

type seedRequest struct {
	Only []string `json:"only"`
}

// Run POST /api/admin/seed {"only": ["blog"]}. An empty body runs every step.
func (h *SeedHandler) Run(c *gin.Context) {
	var req seedRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}
	ctx := c.Request.Context()
	results, err := h.Seeder.Run(ctx, req.Only...)
	if errors.Is(err, application.ErrUnknownSeedStep) {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"only": err.Error(), "steps": h.Seeder.StepNames()})
		return
	}
	if h.Blog != nil {
		if n, rerr := h.Blog.Reindex(ctx); rerr != nil {
			h.Logger.WithError(rerr).Warn("reindex after seed failed")
		} else {
			h.Logger.WithField("posts", n).Info("posts reindexed")
		}
	}
	if err != nil {
		h.Logger.WithError(err).Error("seed run had failures")
		response.Error[any](c, http.StatusInternalServerError, "some seed steps failed", results)
		return
	}
	response.Success(c, http.StatusOK, results, "seed complete", gin.H{"steps": len(results)})
}
