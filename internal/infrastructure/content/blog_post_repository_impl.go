package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// MaxSlugAttempts bounds the candidates tried for a new post: the base slug
// and base-1 through base-9.
const MaxSlugAttempts = 10

// BlogPostRepository stores posts and keeps three invariants the store does
// not: unique slugs, publishedAt consistent with isPublished, and a default
// excerpt.
type BlogPostRepository struct {
	base
}

func NewBlogPostRepository(store docstore.Store, logger *logrus.Logger) *BlogPostRepository {
	return &BlogPostRepository{base{store: store, logger: logger, collection: CollectionBlogPosts}}
}

func (r *BlogPostRepository) ListPosts(ctx context.Context, limit int, onlyPublished bool) ([]entity.BlogPost, error) {
	q := docstore.Query{}.Sort("publishedAt", docstore.Desc)
	if onlyPublished {
		q = q.Where("isPublished", true)
	}
	if limit > 0 {
		q = q.Take(limit)
	}
	docs, err := r.store.Query(ctx, r.collection, q)
	if err != nil {
		return nil, r.fail("list", logrus.Fields{"limit": limit, "only_published": onlyPublished}, err)
	}
	posts := make([]entity.BlogPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, decodeBlogPost(d))
	}
	return posts, nil
}

func (r *BlogPostRepository) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	if slug == "" {
		return nil, nil
	}
	post, err := r.findBySlug(ctx, slug)
	if err != nil {
		return nil, r.fail("get_by_slug", logrus.Fields{"slug": slug}, err)
	}
	return post, nil
}

func (r *BlogPostRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := r.store.Get(ctx, r.collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("get_by_id", logrus.Fields{"id": id}, err)
	}
	post := decodeBlogPost(doc)
	return &post, nil
}

// CreatePost derives a unique slug from the title, defaults the excerpt and
// stamps createdAt, updatedAt and (when published) publishedAt with the store
// clock before writing the new post.
func (r *BlogPostRepository) CreatePost(ctx context.Context, in entity.NewBlogPost) (*entity.BlogPost, error) {
	now, err := r.store.Now(ctx)
	if err != nil {
		return nil, r.fail("create", logrus.Fields{"title": in.Title}, err)
	}

	slug, err := r.reserveSlug(ctx, entity.GenerateSlug(in.Title, now))
	if err != nil {
		if errors.Is(err, repository.ErrSlugGenerationExhausted) {
			r.logger.WithFields(logrus.Fields{
				"op":         "create",
				"collection": r.collection,
				"title":      in.Title,
			}).Warn("slug candidates exhausted")
			return nil, err
		}
		return nil, r.fail("create", logrus.Fields{"title": in.Title}, err)
	}

	post := &entity.BlogPost{
		Title:       in.Title,
		Slug:        slug,
		Content:     in.Content,
		Excerpt:     entity.ResolveExcerpt(optional(in.Excerpt), in.Content),
		ImageURL:    optional(in.ImageURL),
		AuthorName:  in.AuthorName,
		AuthorID:    optional(in.AuthorID),
		Tags:        nonNil(in.Tags),
		IsPublished: in.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}
	if in.IsPublished {
		post.PublishedAt = &now
	}

	data := encodeBlogPost(post)
	data["createdAt"] = post.CreatedAt
	id, err := r.store.Add(ctx, r.collection, data)
	if err != nil {
		return nil, r.fail("create", logrus.Fields{"slug": slug}, err)
	}
	post.ID = id
	return post, nil
}

// UpdatePost merge-writes post over the stored document, leaving createdAt
// untouched. The slug is the caller's (normalized) or, when empty, derived
// from the title again; it must not belong to another post. publishedAt keeps
// a caller-supplied value, is stamped now when publishing without one, and is
// cleared when the post is a draft. post is updated in place with the
// computed fields.
func (r *BlogPostRepository) UpdatePost(ctx context.Context, post *entity.BlogPost) error {
	if post == nil || post.ID == "" {
		return invalid("blog post update requires an id")
	}
	fields := logrus.Fields{"id": post.ID}

	existing, err := r.store.Get(ctx, r.collection, post.ID)
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %s/%s", repository.ErrNotFound, r.collection, post.ID)
	}
	if err != nil {
		return r.fail("update", fields, err)
	}

	now, err := r.store.Now(ctx)
	if err != nil {
		return r.fail("update", fields, err)
	}

	slug := entity.Slugify(post.Slug)
	if slug == "" {
		slug = entity.GenerateSlug(post.Title, now)
	}
	fields["slug"] = slug
	if err := r.checkSlugOwner(ctx, slug, post.ID); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return err
		}
		return r.fail("update", fields, err)
	}

	post.Slug = slug
	post.Excerpt = entity.ResolveExcerpt(post.Excerpt, post.Content)
	post.UpdatedAt = &now
	post.PublishedAt = resolvePublishedAt(post.IsPublished, post.PublishedAt, now)
	post.Tags = nonNil(post.Tags)
	post.CreatedAt = existing.Data.Time("createdAt")

	if err := r.store.Set(ctx, r.collection, post.ID, encodeBlogPost(post), true); err != nil {
		return r.fail("update", fields, err)
	}
	return nil
}

func (r *BlogPostRepository) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return invalid("blog post delete requires an id")
	}
	if err := r.store.Delete(ctx, r.collection, id); err != nil {
		return r.fail("delete", logrus.Fields{"id": id}, err)
	}
	return nil
}

// InitializeDefaultPosts creates the default posts through CreatePost when
// the collection is empty, so they get real slugs and timestamps.
func (r *BlogPostRepository) InitializeDefaultPosts(ctx context.Context) error {
	empty, err := isEmpty(ctx, r.base)
	if err != nil || !empty {
		return err
	}
	for _, in := range DefaultPosts() {
		if _, err := r.CreatePost(ctx, in); err != nil {
			return err
		}
	}
	r.logger.WithField("collection", r.collection).Info("seeded default content")
	return nil
}

// InitializeIfEmpty makes the repository a repository.Initializer.
func (r *BlogPostRepository) InitializeIfEmpty(ctx context.Context) error {
	return r.InitializeDefaultPosts(ctx)
}

// reserveSlug returns the first free candidate for base. The check and the
// later write are separate store calls, so two concurrent creations with the
// same title can both get the same slug; a store with conditional writes
// could close that gap here.
func (r *BlogPostRepository) reserveSlug(ctx context.Context, base string) (string, error) {
	for n := 0; n < MaxSlugAttempts; n++ {
		candidate := entity.SlugCandidate(base, n)
		existing, err := r.findBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", repository.ErrSlugGenerationExhausted, base)
}

// checkSlugOwner fails with ErrSlugTaken when slug belongs to a post other
// than id. Not atomic, like reserveSlug.
func (r *BlogPostRepository) checkSlugOwner(ctx context.Context, slug, id string) error {
	existing, err := r.findBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return fmt.Errorf("%w: %q", repository.ErrSlugTaken, slug)
	}
	return nil
}

func (r *BlogPostRepository) findBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	docs, err := r.store.Query(ctx, r.collection, docstore.Query{}.Where("slug", slug).Take(1))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	post := decodeBlogPost(docs[0])
	return &post, nil
}

func resolvePublishedAt(published bool, supplied *time.Time, now time.Time) *time.Time {
	if !published {
		return nil
	}
	if supplied != nil && !supplied.IsZero() {
		t := supplied.UTC()
		return &t
	}
	return &now
}

// encodeBlogPost covers every field written on update; createdAt is added
// by CreatePost only.
func encodeBlogPost(p *entity.BlogPost) docstore.Data {
	return docstore.Data{
		"title":       p.Title,
		"slug":        p.Slug,
		"content":     p.Content,
		"excerpt":     p.Excerpt,
		"imageUrl":    p.ImageURL,
		"authorName":  p.AuthorName,
		"authorId":    p.AuthorID,
		"tags":        p.Tags,
		"isPublished": p.IsPublished,
		"publishedAt": p.PublishedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

func decodeBlogPost(d docstore.Document) entity.BlogPost {
	return entity.BlogPost{
		ID:          d.ID,
		Title:       d.Data.String("title"),
		Slug:        d.Data.String("slug"),
		Content:     d.Data.String("content"),
		Excerpt:     d.Data.StringPtr("excerpt"),
		ImageURL:    d.Data.StringPtr("imageUrl"),
		AuthorName:  d.Data.String("authorName"),
		AuthorID:    d.Data.StringPtr("authorId"),
		Tags:        d.Data.Strings("tags"),
		IsPublished: d.Data.Bool("isPublished"),
		PublishedAt: d.Data.TimePtr("publishedAt"),
		CreatedAt:   d.Data.Time("createdAt"),
		UpdatedAt:   d.Data.TimePtr("updatedAt"),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.BlogPostRepository = (*BlogPostRepository)(nil)
var _ repository.Initializer = (*BlogPostRepository)(nil)
