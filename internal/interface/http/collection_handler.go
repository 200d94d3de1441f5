package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

// CollectionRepo is the shape shared by the skill, experience and project
// repositories.
type CollectionRepo[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, id string, patch P) error
	Delete(ctx context.Context, id string) error
}

// CollectionHandler serves one ordered content collection: a public list and
// admin create/update/delete.
type CollectionHandler[T any, P any] struct {
	Repo   CollectionRepo[T, P]
	Name   string // plural, used in messages
	Logger *logrus.Logger
	// ListFn overrides Repo.List for the public listing.
	ListFn func(ctx context.Context) ([]T, error)
}

func NewSkillHandler(repo repository.SkillRepository, logger *logrus.Logger) *CollectionHandler[entity.Skill, entity.SkillPatch] {
	return &CollectionHandler[entity.Skill, entity.SkillPatch]{Repo: repo, Name: "skills", Logger: logger}
}

func NewExperienceHandler(repo repository.ExperienceRepository, logger *logrus.Logger) *CollectionHandler[entity.Experience, entity.ExperiencePatch] {
	return &CollectionHandler[entity.Experience, entity.ExperiencePatch]{Repo: repo, Name: "experiences", Logger: logger}
}

// NewProjectHandler lists projects in display order via list.
func NewProjectHandler(repo repository.ProjectRepository, list func(ctx context.Context) ([]entity.Project, error), logger *logrus.Logger) *CollectionHandler[entity.Project, entity.ProjectPatch] {
	return &CollectionHandler[entity.Project, entity.ProjectPatch]{Repo: repo, Name: "projects", Logger: logger, ListFn: list}
}

// List GET /api/<name>
func (h *CollectionHandler[T, P]) List(c *gin.Context) {
	list := h.Repo.List
	if h.ListFn != nil {
		list = h.ListFn
	}
	items, err := list(c.Request.Context())
	if err != nil {
		degraded(c, h.Logger, err, []T{}, h.Name)
		return
	}
	response.Success(c, http.StatusOK, items, h.Name, gin.H{"count": len(items)})
}

// Create POST /api/admin/<name>
func (h *CollectionHandler[T, P]) Create(c *gin.Context) {
	var v T
	if !bindJSON(c, &v) {
		return
	}
	if err := h.Repo.Create(c.Request.Context(), &v); err != nil {
		writeError(c, h.Logger, err, "save "+h.Name)
		return
	}
	response.Success(c, http.StatusCreated, v, "created", nil)
}

// Update PUT /api/admin/<name>/:id merges the supplied fields.
func (h *CollectionHandler[T, P]) Update(c *gin.Context) {
	id := c.Param("id")
	var patch P
	if !bindJSON(c, &patch) {
		return
	}
	if err := h.Repo.Update(c.Request.Context(), id, patch); err != nil {
		writeError(c, h.Logger, err, "save "+h.Name)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "updated": true}, "updated", nil)
}

// Delete DELETE /api/admin/<name>/:id; deleting a missing id succeeds.
func (h *CollectionHandler[T, P]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err, "delete "+h.Name)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true}, "deleted", nil)
}
