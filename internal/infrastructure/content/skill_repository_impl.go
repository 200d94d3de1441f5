package content

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// SkillRepository lists skills by ascending order.
type SkillRepository struct {
	*collection[entity.Skill, entity.SkillPatch]
}

func NewSkillRepository(store docstore.Store, logger *logrus.Logger) *SkillRepository {
	return &SkillRepository{&collection[entity.Skill, entity.SkillPatch]{
		base:     base{store: store, logger: logger, collection: CollectionSkills},
		order:    docstore.Order{Field: "order", Direction: docstore.Asc},
		encode:   encodeSkill,
		decode:   decodeSkill,
		patch:    encodeSkillPatch,
		setID:    func(s *entity.Skill, id string) { s.ID = id },
		defaults: DefaultSkills,
		prepare: func(s *entity.Skill) error {
			if !s.Category.Valid() {
				return invalid("skill category %q", s.Category)
			}
			return nil
		},
		checkPatch: func(p entity.SkillPatch) error {
			if p.Category != nil && !p.Category.Valid() {
				return invalid("skill category %q", *p.Category)
			}
			return nil
		},
	}}
}

func encodeSkill(s *entity.Skill) docstore.Data {
	return docstore.Data{
		"name":        s.Name,
		"category":    string(s.Category),
		"proficiency": s.Proficiency,
		"icon":        s.Icon,
		"color":       s.Color,
		"featured":    s.Featured,
		"order":       s.Order,
	}
}

func encodeSkillPatch(p entity.SkillPatch) docstore.Data {
	data := docstore.Data{}
	set(data, "name", p.Name)
	if p.Category != nil {
		data["category"] = string(*p.Category)
	}
	set(data, "proficiency", p.Proficiency)
	set(data, "icon", p.Icon)
	set(data, "color", p.Color)
	set(data, "featured", p.Featured)
	set(data, "order", p.Order)
	return data
}

func decodeSkill(d docstore.Document) entity.Skill {
	return entity.Skill{
		ID:          d.ID,
		Name:        d.Data.String("name"),
		Category:    entity.SkillCategory(d.Data.String("category")),
		Proficiency: d.Data.Int("proficiency"),
		Icon:        d.Data.String("icon"),
		Color:       d.Data.String("color"),
		Featured:    d.Data.Bool("featured"),
		Order:       d.Data.IntPtr("order"),
	}
}

var _ repository.SkillRepository = (*SkillRepository)(nil)
