package entity

// ProfileID is the fixed document id of the singleton profile record.
const ProfileID = "main"

// Profile is the site owner's singleton record.
type Profile struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Location  string `json:"location"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	LinkedIn  string `json:"linkedin"`
	Bio       string `json:"bio"`
	Objective string `json:"objective"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// ProfilePatch carries a partial profile edit. Nil fields are left untouched.
type ProfilePatch struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Location  *string `json:"location,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Objective *string `json:"objective,omitempty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
}

// PatchFromProfile turns a full record into a patch that overwrites every field.
func PatchFromProfile(p Profile) ProfilePatch {
	return ProfilePatch{
		Name:      &p.Name,
		Title:     &p.Title,
		Location:  &p.Location,
		Phone:     &p.Phone,
		Email:     &p.Email,
		LinkedIn:  &p.LinkedIn,
		Bio:       &p.Bio,
		Objective: &p.Objective,
		PhotoURL:  &p.PhotoURL,
	}
}
