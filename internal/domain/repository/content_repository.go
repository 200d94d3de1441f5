// Package repository declares the content repositories the rest of the
// application depends on. Implementations live under internal/infrastructure.
package repository

import (
	"context"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
)

// Initializer seeds a collection with default content when it is empty.
// Calling it on a populated collection is a no-op.
type Initializer interface {
	InitializeIfEmpty(ctx context.Context) error
}

type ProfileRepository interface {
	Initializer
	// Get returns nil, nil when the profile has not been created yet.
	Get(ctx context.Context) (*entity.Profile, error)
	Update(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error)
}

type SkillRepository interface {
	Initializer
	List(ctx context.Context) ([]entity.Skill, error)
	Create(ctx context.Context, s *entity.Skill) error
	Update(ctx context.Context, id string, patch entity.SkillPatch) error
	Delete(ctx context.Context, id string) error
}

type ExperienceRepository interface {
	Initializer
	List(ctx context.Context) ([]entity.Experience, error)
	Create(ctx context.Context, e *entity.Experience) error
	Update(ctx context.Context, id string, patch entity.ExperiencePatch) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	Initializer
	List(ctx context.Context) ([]entity.Project, error)
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, id string, patch entity.ProjectPatch) error
	Delete(ctx context.Context, id string) error
}

type BlogPostRepository interface {
	// ListPosts returns posts ordered by publishedAt descending. limit <= 0
	// means no limit.
	ListPosts(ctx context.Context, limit int, onlyPublished bool) ([]entity.BlogPost, error)
	// GetBySlug returns nil, nil when no post has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)
	// GetByID returns nil, nil when the post does not exist.
	GetByID(ctx context.Context, id string) (*entity.BlogPost, error)
	CreatePost(ctx context.Context, in entity.NewBlogPost) (*entity.BlogPost, error)
	UpdatePost(ctx context.Context, post *entity.BlogPost) error
	DeletePost(ctx context.Context, id string) error
	InitializeDefaultPosts(ctx context.Context) error
}

type ContactMessageRepository interface {
	Create(ctx context.Context, m *entity.ContactMessage) error
}
