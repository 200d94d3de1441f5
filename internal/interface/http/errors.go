package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
	"github.com/oksasatya/go-portfolio-cms/pkg/validation"
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.RealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// bindJSON decodes the body into dst and checks its `validate` tags. It
// writes the 400 response itself and reports whether the handler can go on.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	if err := validation.Struct(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

// writeError maps repository errors on admin routes to HTTP responses.
func writeError(c *gin.Context, logger *logrus.Logger, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repository.ErrSlugTaken):
		response.Error[any](c, http.StatusConflict, "slug already used by another post", map[string]string{"slug": "is already taken"})
	case errors.Is(err, repository.ErrSlugGenerationExhausted):
		response.Error[any](c, http.StatusConflict, "could not generate a unique slug, change the title and retry", map[string]string{"title": "produces a slug that is already taken"})
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"action":     action,
				"request_id": c.GetString("request_id"),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to "+action, nil)
	}
}

// degraded answers a public read whose store call failed: 200 with the
// empty value and meta.degraded so the page renders its empty state.
func degraded[T any](c *gin.Context, logger *logrus.Logger, err error, empty T, what string) {
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"read":       what,
			"request_id": c.GetString("request_id"),
		}).Warn("public read degraded")
	}
	response.Success(c, http.StatusOK, empty, what+" temporarily unavailable", gin.H{"degraded": true})
}
