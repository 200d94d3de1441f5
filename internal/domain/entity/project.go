package entity

import (
	"math"
	"sort"
)

type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	ImageURL     string   `json:"imageUrl"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl,omitempty" validate:"omitempty,url"`
	GithubURL    string   `json:"githubUrl,omitempty" validate:"omitempty,url"`
	Featured     bool     `json:"featured"`
	Order        *int     `json:"order,omitempty"`
}

// ProjectPatch carries a partial project edit. Nil fields are left untouched.
type ProjectPatch struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	LiveURL      *string   `json:"liveUrl,omitempty" validate:"omitempty,url"`
	GithubURL    *string   `json:"githubUrl,omitempty" validate:"omitempty,url"`
	Featured     *bool     `json:"featured,omitempty"`
	Order        *int      `json:"order,omitempty"`
}

// SortProjectsForDisplay orders featured projects first and then by ascending
// order. Projects without an order come first within their group; the sort is
// stable so equal keys keep their incoming order.
func SortProjectsForDisplay(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		return orderValue(a.Order) < orderValue(b.Order)
	})
}

func orderValue(o *int) int {
	if o == nil {
		return math.MinInt
	}
	return *o
}
