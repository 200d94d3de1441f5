package entity

import "fmt"

// SkillCategory is the closed set of skill groupings shown on the site.
type SkillCategory string

const (
	SkillCategoryLanguage  SkillCategory = "Programming Languages"
	SkillCategoryFramework SkillCategory = "Frameworks & Technologies"
	SkillCategoryDatabase  SkillCategory = "Databases"
	SkillCategoryTool      SkillCategory = "Tools"
	SkillCategoryTesting   SkillCategory = "Testing & Quality"
	SkillCategoryOther     SkillCategory = "Other"
)

// SkillCategories lists every category in display order.
var SkillCategories = []SkillCategory{
	SkillCategoryLanguage,
	SkillCategoryFramework,
	SkillCategoryDatabase,
	SkillCategoryTool,
	SkillCategoryTesting,
	SkillCategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c SkillCategory) Valid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseSkillCategory converts a stored or submitted label into a SkillCategory.
func ParseSkillCategory(s string) (SkillCategory, error) {
	c := SkillCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown skill category %q", s)
	}
	return c, nil
}

type Skill struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name" validate:"required"`
	Category    SkillCategory `json:"category" validate:"required,skillcategory"`
	Proficiency int           `json:"proficiency" validate:"min=0,max=100"`
	Icon        string        `json:"icon,omitempty"`
	Color       string        `json:"color,omitempty"`
	Featured    bool          `json:"featured,omitempty"`
	Order       *int          `json:"order,omitempty"`
}

// SkillPatch carries a partial skill edit. Nil fields are left untouched.
type SkillPatch struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Category    *SkillCategory `json:"category,omitempty" validate:"omitempty,skillcategory"`
	Proficiency *int           `json:"proficiency,omitempty" validate:"omitempty,min=0,max=100"`
	Icon        *string        `json:"icon,omitempty"`
	Color       *string        `json:"color,omitempty"`
	Featured    *bool          `json:"featured,omitempty"`
	Order       *int           `json:"order,omitempty"`
}
