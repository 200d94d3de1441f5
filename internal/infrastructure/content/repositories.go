package content

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// Repositories bundles every content repository built over one store.
type Repositories struct {
	Profile     *ProfileRepository
	Skills      *SkillRepository
	Experiences *ExperienceRepository
	Projects    *ProjectRepository
	BlogPosts   *BlogPostRepository
	Contact     *ContactMessageRepository
}

func NewRepositories(store docstore.Store, logger *logrus.Logger) *Repositories {
	return &Repositories{
		Profile:     NewProfileRepository(store, logger),
		Skills:      NewSkillRepository(store, logger),
		Experiences: NewExperienceRepository(store, logger),
		Projects:    NewProjectRepository(store, logger),
		BlogPosts:   NewBlogPostRepository(store, logger),
		Contact:     NewContactMessageRepository(store, logger),
	}
}
