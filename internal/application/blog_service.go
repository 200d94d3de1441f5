package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
)

const (
	DefaultSearchSize = 10
	MaxSearchSize     = 50
)

// PostIndex is a full-text index of published posts.
type PostIndex interface {
	Index(ctx context.Context, post entity.BlogPost) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]PostHit, error)
}

// PostHit is one search result.
type PostHit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt,omitempty"`
}

// BlogService runs blog writes through the repository and keeps the search
// index in step. Index failures are logged and never fail the write.
type BlogService struct {
	Repo   repository.BlogPostRepository
	Index  PostIndex // nil disables indexing; search then scans the store
	Logger *logrus.Logger
}

func NewBlogService(repo repository.BlogPostRepository, index PostIndex, logger *logrus.Logger) *BlogService {
	return &BlogService{Repo: repo, Index: index, Logger: logger}
}

func (s *BlogService) List(ctx context.Context, limit int, onlyPublished bool) ([]entity.BlogPost, error) {
	return s.Repo.ListPosts(ctx, limit, onlyPublished)
}

// PublishedBySlug hides drafts from public readers.
func (s *BlogService) PublishedBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	post, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil || post == nil || !post.IsPublished {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, in entity.NewBlogPost) (*entity.BlogPost, error) {
	post, err := s.Repo.CreatePost(ctx, in)
	if err != nil {
		return nil, err
	}
	s.sync(ctx, post)
	return post, nil
}

func (s *BlogService) Update(ctx context.Context, post *entity.BlogPost) error {
	if err := s.Repo.UpdatePost(ctx, post); err != nil {
		return err
	}
	s.sync(ctx, post)
	return nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeletePost(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, "remove", id)
		}
	}
	return nil
}

// Reindex pushes every published post to the index, e.g. after seeding.
func (s *BlogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	posts, err := s.Repo.ListPosts(ctx, 0, true)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range posts {
		if err := s.Index.Index(ctx, p); err != nil {
			s.warn(err, "index", p.ID)
			continue
		}
		n++
	}
	return n, nil
}

// Search queries the index when one is configured and falls back to a
// case-insensitive scan of published posts otherwise.
func (s *BlogService) Search(ctx context.Context, q string, size int) ([]PostHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []PostHit{}, nil
	}
	if size <= 0 || size > MaxSearchSize {
		size = DefaultSearchSize
	}
	if s.Index != nil {
		hits, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return hits, nil
		}
		s.warn(err, "search", "")
	}
	return s.scan(ctx, q, size)
}

func (s *BlogService) scan(ctx context.Context, q string, size int) ([]PostHit, error) {
	posts, err := s.Repo.ListPosts(ctx, 0, true)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	hits := []PostHit{}
	for _, p := range posts {
		if !matches(p, needle) {
			continue
		}
		hits = append(hits, hitFromPost(p))
		if len(hits) == size {
			break
		}
	}
	return hits, nil
}

func matches(p entity.BlogPost, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.EqualFold(t, needle) {
			return true
		}
	}
	return false
}

func hitFromPost(p entity.BlogPost) PostHit {
	h := PostHit{ID: p.ID, Title: p.Title, Slug: p.Slug, Tags: p.Tags}
	if p.Excerpt != nil {
		h.Excerpt = *p.Excerpt
	}
	if p.PublishedAt != nil {
		h.PublishedAt = p.PublishedAt.UTC().Format(timeLayout)
	}
	if h.Tags == nil {
		h.Tags = []string{}
	}
	return h
}

// sync indexes published posts and drops drafts from the index.
func (s *BlogService) sync(ctx context.Context, post *entity.BlogPost) {
	if s.Index == nil || post == nil {
		return
	}
	if post.IsPublished {
		if err := s.Index.Index(ctx, *post); err != nil {
			s.warn(err, "index", post.ID)
		}
		return
	}
	if err := s.Index.Remove(ctx, post.ID); err != nil {
		s.warn(err, "remove", post.ID)
	}
}

func (s *BlogService) warn(err error, op, id string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(logrus.Fields{"op": op, "post_id": id}).Warn("blog search index")
}
