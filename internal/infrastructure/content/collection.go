// Package content implements the domain repositories on top of a
// docstore.Store. Every repository is an instance holding the injected store
// and logger; none of them keeps package-level state.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// Collection names.
const (
	CollectionProfile         = "profile"
	CollectionSkills          = "skills"
	CollectionExperiences     = "experiences"
	CollectionProjects        = "projects"
	CollectionBlogPosts       = "blogPosts"
	CollectionContactMessages = "contactMessages"
)

// base carries what every repository needs to reach its collection and to
// report failures consistently.
type base struct {
	store      docstore.Store
	logger     *logrus.Logger
	collection string
}

// fail logs err with the operation context and returns it wrapped as
// ErrStoreUnavailable.
func (b base) fail(op string, fields logrus.Fields, err error) error {
	entry := b.logger.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"collection": b.collection,
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error("store operation failed")
	return fmt.Errorf("%w: %s %s: %w", repository.ErrStoreUnavailable, op, b.collection, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", repository.ErrValidation, fmt.Sprintf(format, args...))
}

// collection is the generic list/create/update/delete repository shared by
// skills, experiences and projects.
type collection[T any, P any] struct {
	base
	order    docstore.Order
	encode   func(*T) docstore.Data
	decode   func(docstore.Document) T
	patch    func(P) docstore.Data
	setID    func(*T, string)
	defaults func() []T

	// prepare normalizes a record and rejects structurally invalid ones
	// before any store call.
	prepare func(*T) error
	// checkPatch rejects invalid patches before any store call.
	checkPatch func(P) error
	// beforeMerge may adjust the patch against the stored document.
	beforeMerge func(existing docstore.Data, patch docstore.Data)
}

// List returns every document ordered by the collection's display order.
func (c *collection[T, P]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.Query(ctx, c.collection, docstore.Query{OrderBy: []docstore.Order{c.order}})
	if err != nil {
		return nil, c.fail("list", nil, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, c.decode(d))
	}
	return out, nil
}

// Create stores v under a new id and writes the id back into v.
func (c *collection[T, P]) Create(ctx context.Context, v *T) error {
	if v == nil {
		return invalid("%s: nil record", c.collection)
	}
	if c.prepare != nil {
		if err := c.prepare(v); err != nil {
			return err
		}
	}
	id, err := c.store.Add(ctx, c.collection, c.encode(v))
	if err != nil {
		return c.fail("create", nil, err)
	}
	c.setID(v, id)
	return nil
}

// Update merges the non-nil patch fields into the document at id. Missing
// documents are reported as ErrNotFound rather than being created.
func (c *collection[T, P]) Update(ctx context.Context, id string, p P) error {
	if id == "" {
		return invalid("%s: update requires an id", c.collection)
	}
	if c.checkPatch != nil {
		if err := c.checkPatch(p); err != nil {
			return err
		}
	}
	fields := logrus.Fields{"id": id}
	existing, err := c.store.Get(ctx, c.collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %s/%s", repository.ErrNotFound, c.collection, id)
	}
	if err != nil {
		return c.fail("update", fields, err)
	}
	data := c.patch(p)
	if c.beforeMerge != nil {
		c.beforeMerge(existing.Data, data)
	}
	if len(data) == 0 {
		return nil
	}
	if err := c.store.Set(ctx, c.collection, id, data, true); err != nil {
		return c.fail("update", fields, err)
	}
	return nil
}

// Delete removes the document at id. Missing documents are not an error.
func (c *collection[T, P]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalid("%s: delete requires an id", c.collection)
	}
	if err := c.store.Delete(ctx, c.collection, id); err != nil {
		return c.fail("delete", logrus.Fields{"id": id}, err)
	}
	return nil
}

// InitializeIfEmpty inserts the default records when the collection holds no
// document at all. The steady-state cost is a single one-document read.
func (c *collection[T, P]) InitializeIfEmpty(ctx context.Context) error {
	empty, err := isEmpty(ctx, c.base)
	if err != nil || !empty {
		return err
	}
	for _, v := range c.defaults() {
		v := v
		if err := c.Create(ctx, &v); err != nil {
			return err
		}
	}
	c.logger.WithField("collection", c.collection).Info("seeded default content")
	return nil
}

func isEmpty(ctx context.Context, b base) (bool, error) {
	docs, err := b.store.Query(ctx, b.collection, docstore.Query{Limit: 1})
	if err != nil {
		return false, b.fail("initialize", nil, err)
	}
	return len(docs) == 0, nil
}

// set puts v into data under key when v is non-nil.
func set[V any](data docstore.Data, key string, v *V) {
	if v != nil {
		data[key] = *v
	}
}
