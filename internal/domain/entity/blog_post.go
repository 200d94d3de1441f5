package entity

import "time"

// BlogPost is a Markdown article. Slug is unique across all posts;
// PublishedAt is set exactly when IsPublished is true.
type BlogPost struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	ImageURL    *string    `json:"imageUrl"`
	AuthorName  string     `json:"authorName" validate:"required"`
	AuthorID    *string    `json:"authorId"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewBlogPost is the caller-supplied part of a post at creation time. Slug,
// timestamps and the default excerpt are computed by the repository.
type NewBlogPost struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content"`
	AuthorName  string   `json:"authorName" validate:"required"`
	Tags        []string `json:"tags"`
	Excerpt     string   `json:"excerpt"`
	ImageURL    string   `json:"imageUrl"`
	IsPublished bool     `json:"isPublished"`
	AuthorID    string   `json:"authorId"`
}
