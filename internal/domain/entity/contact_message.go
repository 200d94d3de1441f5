package entity

import "time"

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required,max=120"`
	Email     string    `json:"email" validate:"required,email"`
	Subject   string    `json:"subject" validate:"required,max=200"`
	Message   string    `json:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"createdAt"`
	Replied   bool      `json:"replied"`
}
