package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

const maxPublicPosts = 100

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

// updatePostRequest is the full editable state of a post. An empty slug
// derives one from the title; publishedAt is kept when supplied.
type updatePostRequest struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"omitempty,slug"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
	AuthorName  string     `json:"authorName" validate:"required"`
	AuthorID    *string    `json:"authorId"`
	Tags        []string   `json:"tags" validate:"dive,required"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// List GET /api/blog?limit=
func (h *BlogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > maxPublicPosts {
		limit = maxPublicPosts
	}
	posts, err := h.Svc.List(c.Request.Context(), limit, true)
	if err != nil {
		degraded(c, h.Logger, err, []entity.BlogPost{}, "posts")
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", gin.H{"count": len(posts)})
}

// Search GET /api/blog/search?q=&size=
func (h *BlogHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		degraded(c, h.Logger, err, []application.PostHit{}, "search")
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// GetBySlug GET /api/blog/:slug. Drafts are not found.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.Svc.PublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		degraded[*entity.BlogPost](c, h.Logger, err, nil, "post")
		return
	}
	if post == nil {
		response.Error[any](c, http.StatusNotFound, "post not found", nil)
		return
	}
	response.Success(c, http.StatusOK, post, "post", nil)
}

// AdminList GET /api/admin/blog lists drafts and published posts.
func (h *BlogHandler) AdminList(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context(), 0, false)
	if err != nil {
		writeError(c, h.Logger, err, "load posts")
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", gin.H{"count": len(posts)})
}

// AdminGet GET /api/admin/blog/:id
func (h *BlogHandler) AdminGet(c *gin.Context) {
	post, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "load post")
		return
	}
	if post == nil {
		response.Error[any](c, http.StatusNotFound, "post not found", nil)
		return
	}
	response.Success(c, http.StatusOK, post, "post", nil)
}

// Create POST /api/admin/blog
func (h *BlogHandler) Create(c *gin.Context) {
	var in entity.NewBlogPost
	if !bindJSON(c, &in) {
		return
	}
	if in.AuthorID == "" {
		in.AuthorID = c.GetString(middleware.CtxUserIDKey)
	}
	post, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err, "save post")
		return
	}
	response.Success(c, http.StatusCreated, post, "post created", nil)
}

// Update PUT /api/admin/blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	post := &entity.BlogPost{
		ID:          c.Param("id"),
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		ImageURL:    req.ImageURL,
		AuthorName:  req.AuthorName,
		AuthorID:    req.AuthorID,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
		PublishedAt: req.PublishedAt,
	}
	if err := h.Svc.Update(c.Request.Context(), post); err != nil {
		writeError(c, h.Logger, err, "save post")
		return
	}
	response.Success(c, http.StatusOK, post, "post updated", nil)
}

// Delete DELETE /api/admin/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err, "delete post")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true}, "post deleted", nil)
}
