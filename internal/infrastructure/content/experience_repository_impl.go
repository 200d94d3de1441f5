package content

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// ExperienceRepository lists positions newest first by start date.
type ExperienceRepository struct {
	*collection[entity.Experience, entity.ExperiencePatch]
}

func NewExperienceRepository(store docstore.Store, logger *logrus.Logger) *ExperienceRepository {
	return &ExperienceRepository{&collection[entity.Experience, entity.ExperiencePatch]{
		base:     base{store: store, logger: logger, collection: CollectionExperiences},
		order:    docstore.Order{Field: "startDate", Direction: docstore.Desc},
		encode:   encodeExperience,
		decode:   decodeExperience,
		patch:    encodeExperiencePatch,
		setID:    func(e *entity.Experience, id string) { e.ID = id },
		defaults: DefaultExperiences,
		prepare: func(e *entity.Experience) error {
			e.Normalize()
			return nil
		},
		beforeMerge: func(existing, patch docstore.Data) {
			current := existing.Bool("current")
			if v, ok := patch["current"].(bool); ok {
				current = v
			}
			if current {
				patch["endDate"] = nil
			}
		},
	}}
}

func encodeExperience(e *entity.Experience) docstore.Data {
	return docstore.Data{
		"title":            e.Title,
		"company":          e.Company,
		"location":         e.Location,
		"startDate":        e.StartDate,
		"endDate":          e.EndDate,
		"current":          e.Current,
		"description":      e.Description,
		"responsibilities": nonNil(e.Responsibilities),
		"technologies":     nonNil(e.Technologies),
		"order":            e.Order,
	}
}

func encodeExperiencePatch(p entity.ExperiencePatch) docstore.Data {
	data := docstore.Data{}
	set(data, "title", p.Title)
	set(data, "company", p.Company)
	set(data, "location", p.Location)
	set(data, "startDate", p.StartDate)
	set(data, "endDate", p.EndDate)
	set(data, "current", p.Current)
	set(data, "description", p.Description)
	set(data, "responsibilities", p.Responsibilities)
	set(data, "technologies", p.Technologies)
	set(data, "order", p.Order)
	return data
}

func decodeExperience(d docstore.Document) entity.Experience {
	return entity.Experience{
		ID:               d.ID,
		Title:            d.Data.String("title"),
		Company:          d.Data.String("company"),
		Location:         d.Data.String("location"),
		StartDate:        d.Data.String("startDate"),
		EndDate:          d.Data.StringPtr("endDate"),
		Current:          d.Data.Bool("current"),
		Description:      d.Data.String("description"),
		Responsibilities: d.Data.Strings("responsibilities"),
		Technologies:     d.Data.Strings("technologies"),
		Order:            d.Data.IntPtr("order"),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.ExperienceRepository = (*ExperienceRepository)(nil)
