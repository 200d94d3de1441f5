package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

type ProfileHandler struct {
	Repo   repository.ProfileRepository
	Logger *logrus.Logger
}

func NewProfileHandler(repo repository.ProfileRepository, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Repo: repo, Logger: logger}
}

// Get GET /api/profile. Data is null until the profile is seeded.
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		degraded[*entity.Profile](c, h.Logger, err, nil, "profile")
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// Update PUT /api/admin/profile merges the supplied fields.
func (h *ProfileHandler) Update(c *gin.Context) {
	var patch entity.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.Repo.Update(c.Request.Context(), patch)
	if err != nil {
		writeError(c, h.Logger, err, "save profile")
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}
