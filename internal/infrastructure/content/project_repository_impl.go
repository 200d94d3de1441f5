package content

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// ProjectRepository lists projects by ascending order. Featured-first display
// ordering is applied by callers through entity.SortProjectsForDisplay.
type ProjectRepository struct {
	*collection[entity.Project, entity.ProjectPatch]
}

func NewProjectRepository(store docstore.Store, logger *logrus.Logger) *ProjectRepository {
	return &ProjectRepository{&collection[entity.Project, entity.ProjectPatch]{
		base:     base{store: store, logger: logger, collection: CollectionProjects},
		order:    docstore.Order{Field: "order", Direction: docstore.Asc},
		encode:   encodeProject,
		decode:   decodeProject,
		patch:    encodeProjectPatch,
		setID:    func(p *entity.Project, id string) { p.ID = id },
		defaults: DefaultProjects,
	}}
}

func encodeProject(p *entity.Project) docstore.Data {
	return docstore.Data{
		"title":        p.Title,
		"description":  p.Description,
		"imageUrl":     p.ImageURL,
		"technologies": nonNil(p.Technologies),
		"liveUrl":      p.LiveURL,
		"githubUrl":    p.GithubURL,
		"featured":     p.Featured,
		"order":        p.Order,
	}
}

func encodeProjectPatch(p entity.ProjectPatch) docstore.Data {
	data := docstore.Data{}
	set(data, "title", p.Title)
	set(data, "description", p.Description)
	set(data, "imageUrl", p.ImageURL)
	set(data, "technologies", p.Technologies)
	set(data, "liveUrl", p.LiveURL)
	set(data, "githubUrl", p.GithubURL)
	set(data, "featured", p.Featured)
	set(data, "order", p.Order)
	return data
}

func decodeProject(d docstore.Document) entity.Project {
	return entity.Project{
		ID:           d.ID,
		Title:        d.Data.String("title"),
		Description:  d.Data.String("description"),
		ImageURL:     d.Data.String("imageUrl"),
		Technologies: d.Data.Strings("technologies"),
		LiveURL:      d.Data.String("liveUrl"),
		GithubURL:    d.Data.String("githubUrl"),
		Featured:     d.Data.Bool("featured"),
		Order:        d.Data.IntPtr("order"),
	}
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
