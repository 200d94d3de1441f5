package repository

import "errors"

var (
	// ErrStoreUnavailable wraps any transport or driver failure of the document store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrValidation marks structurally invalid input rejected before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned by operations that require an existing document.
	ErrNotFound = errors.New("not found")
	// ErrSlugGenerationExhausted means no free slug was found for a new post.
	ErrSlugGenerationExhausted = errors.New("could not generate a unique slug, change the title and retry")
	// ErrSlugTaken means an update tried to move a post onto another post's slug.
	ErrSlugTaken = errors.New("slug already used by another post")
)
