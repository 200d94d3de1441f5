package application

import "github.com/oksasatya/go-portfolio-cms/internal/domain/repository"

// ContentRepos is the set of content repositories the services work with.
type ContentRepos struct {
	Profile     repository.ProfileRepository
	Skills      repository.SkillRepository
	Experiences repository.ExperienceRepository
	Projects    repository.ProjectRepository
	BlogPosts   repository.BlogPostRepository
	Contact     repository.ContactMessageRepository
}
