package entity

// Experience is one entry of the work history. A nil EndDate means the
// position is ongoing; Current=true always implies a nil EndDate once stored.
type Experience struct {
	ID               string   `json:"id,omitempty"`
	Title            string   `json:"title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Current          bool     `json:"current"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
	Order            *int     `json:"order,omitempty"`
}

// Normalize clears EndDate on ongoing positions.
func (e *Experience) Normalize() {
	if e.Current {
		e.EndDate = nil
	}
}

// ExperiencePatch carries a partial experience edit. Nil fields are left
// untouched; setting Current to true also clears the stored end date.
type ExperiencePatch struct {
	Title            *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Company          *string   `json:"company,omitempty" validate:"omitempty,min=1"`
	Location         *string   `json:"location,omitempty"`
	StartDate        *string   `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate          *string   `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Current          *bool     `json:"current,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Responsibilities *[]string `json:"responsibilities,omitempty"`
	Technologies     *[]string `json:"technologies,omitempty"`
	Order            *int      `json:"order,omitempty"`
}
