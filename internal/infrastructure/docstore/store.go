// Package docstore defines the document-store boundary used by the content
// repositories: six primitives over named collections of flat records.
//
// Implementations: Memory (this package), postgres.DocStore (JSONB) and
// sqlite.DocStore (JSON1).
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrNotFound is returned by Get when the document does not exist.
var ErrNotFound = errors.New("document not found")

// Data is a flat document body keyed by field name.
type Data map[string]any

// Document is a stored record with its store-assigned id.
type Document struct {
	ID   string
	Data Data
}

// Direction of an Order clause.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter matches documents whose Field equals Value.
type Filter struct {
	Field string
	Value any
}

// Order sorts by Field. Absent and null values sort lowest.
type Order struct {
	Field     string
	Direction Direction
}

// Query selects documents of one collection. A zero Limit means no limit.
type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
}

// Where returns a copy of q with an equality filter appended.
func (q Query) Where(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// Sort returns a copy of q with an order clause appended.
func (q Query) Sort(field string, dir Direction) Query {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field, Direction: dir})
	return q
}

// Take returns a copy of q limited to n documents.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// Store is the persistence boundary. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	// Add stores data under a new store-assigned id and returns it.
	Add(ctx context.Context, collection string, data Data) (string, error)
	// Set writes data at id. With merge, only the given fields are replaced
	// and the rest of an existing document is kept; a missing document is created.
	Set(ctx context.Context, collection, id string, data Data, merge bool) error
	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Now returns the store's clock.
	Now(ctx context.Context) (time.Time, error)
	Close() error
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateQuery rejects field names that are not plain identifiers. SQL
// backends splice field names into JSON paths, so this runs before every query.
func ValidateQuery(q Query) error {
	for _, f := range q.Filters {
		if !fieldName.MatchString(f.Field) {
			return fmt.Errorf("docstore: invalid filter field %q", f.Field)
		}
	}
	for _, o := range q.OrderBy {
		if !fieldName.MatchString(o.Field) {
			return fmt.Errorf("docstore: invalid order field %q", o.Field)
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("docstore: negative limit %d", q.Limit)
	}
	return nil
}
