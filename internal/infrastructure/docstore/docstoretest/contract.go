// Package docstoretest holds the behavioural contract every docstore.Store
// implementation must satisfy.
package docstoretest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// Factory returns an empty store. The suite closes it when the test ends.
type Factory func(t *testing.T) docstore.Store

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	tests := []struct {
		name string
		fn   func(t *testing.T, s docstore.Store)
	}{
		{"add and get round trip", testAddGet},
		{"get missing document", testGetMissing},
		{"merge set keeps untouched fields", testMergeSet},
		{"replace set drops missing fields", testReplaceSet},
		{"merge set creates missing document", testMergeCreates},
		{"delete is idempotent", testDelete},
		{"query filters by equality", testQueryFilter},
		{"query orders with nulls lowest", testQueryOrderNulls},
		{"query breaks ties by insertion", testQueryTies},
		{"query limit", testQueryLimit},
		{"query rejects bad field names", testQueryBadField},
		{"collections are isolated", testCollectionsIsolated},
		{"now is a server timestamp", testNow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func ts(sec int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, sec, 0, time.UTC)
}

func testAddGet(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.Add(ctx, "things", docstore.Data{
		"name":    "alpha",
		"ok":      true,
		"count":   42,
		"tags":    []string{"a", "b"},
		"at":      ts(5),
		"missing": nil,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a store-assigned id")
	}

	doc, err := s.Get(ctx, "things", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.ID != id {
		t.Errorf("expected id %q, got %q", id, doc.ID)
	}
	if got := doc.Data.String("name"); got != "alpha" {
		t.Errorf("expected name alpha, got %q", got)
	}
	if !doc.Data.Bool("ok") {
		t.Error("expected ok to be true")
	}
	if got := doc.Data.Int("count"); got != 42 {
		t.Errorf("expected count 42, got %d", got)
	}
	if got := doc.Data.Strings("tags"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected tags [a b], got %v", got)
	}
	if got := doc.Data.Time("at"); !got.Equal(ts(5)) {
		t.Errorf("expected at %v, got %v", ts(5), got)
	}
	if got := doc.Data.StringPtr("missing"); got != nil {
		t.Errorf("expected missing to be absent, got %q", *got)
	}
}

func testGetMissing(t *testing.T, s docstore.Store) {
	_, err := s.Get(context.Background(), "things", "nope")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testMergeSet(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.Add(ctx, "things", docstore.Data{"name": "alpha", "count": 1})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Set(ctx, "things", id, docstore.Data{"count": 2, "extra": "x"}, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	doc, err := s.Get(ctx, "things", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Data.String("name") != "alpha" {
		t.Error("merge dropped an untouched field")
	}
	if doc.Data.Int("count") != 2 || doc.Data.String("extra") != "x" {
		t.Errorf("merge did not apply new fields: %v", doc.Data)
	}
}

func testReplaceSet(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.Add(ctx, "things", docstore.Data{"name": "alpha", "count": 1})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Set(ctx, "things", id, docstore.Data{"count": 3}, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	doc, err := s.Get(ctx, "things", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := doc.Data["name"]; ok {
		t.Error("replace kept a field that was not written")
	}
	if doc.Data.Int("count") != 3 {
		t.Errorf("expected count 3, got %d", doc.Data.Int("count"))
	}
}

func testMergeCreates(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	if err := s.Set(ctx, "profile", "main", docstore.Data{"name": "Ada"}, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	doc, err := s.Get(ctx, "profile", "main")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Data.String("name") != "Ada" {
		t.Errorf("expected name Ada, got %q", doc.Data.String("name"))
	}
}

func testDelete(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.Add(ctx, "things", docstore.Data{"name": "alpha"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Delete(ctx, "things", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "things", id); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected deleted document to be gone, got %v", err)
	}
	if err := s.Delete(ctx, "things", id); err != nil {
		t.Errorf("second delete should succeed, got %v", err)
	}
	if err := s.Delete(ctx, "never-created", "ghost"); err != nil {
		t.Errorf("delete in empty collection should succeed, got %v", err)
	}
}

func testQueryFilter(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	for _, d := range []docstore.Data{
		{"slug": "a", "live": true},
		{"slug": "b", "live": false},
		{"slug": "c", "live": true},
	} {
		if _, err := s.Add(ctx, "posts", d); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	live, err := s.Query(ctx, "posts", docstore.Query{}.Where("live", true).Sort("slug", docstore.Asc))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(live) != 2 || live[0].Data.String("slug") != "a" || live[1].Data.String("slug") != "c" {
		t.Errorf("expected live posts a and c, got %v", live)
	}

	bySlug, err := s.Query(ctx, "posts", docstore.Query{}.Where("slug", "b"))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(bySlug) != 1 || bySlug[0].Data.Bool("live") {
		t.Errorf("expected the single draft b, got %v", bySlug)
	}
}

func testQueryOrderNulls(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	for _, d := range []docstore.Data{
		{"name": "t2", "at": ts(2)},
		{"name": "never", "at": nil},
		{"name": "t3", "at": ts(3)},
		{"name": "absent"},
		{"name": "t1", "at": ts(1)},
	} {
		if _, err := s.Add(ctx, "posts", d); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	desc, err := s.Query(ctx, "posts", docstore.Query{}.Sort("at", docstore.Desc))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	names := namesOf(desc)
	if len(names) != 5 || names[0] != "t3" || names[1] != "t2" || names[2] != "t1" {
		t.Errorf("expected t3 t2 t1 first in descending order, got %v", names)
	}

	asc, err := s.Query(ctx, "posts", docstore.Query{}.Sort("at", docstore.Asc))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	names = namesOf(asc)
	if len(names) != 5 || names[2] != "t1" || names[3] != "t2" || names[4] != "t3" {
		t.Errorf("expected nulls first then t1 t2 t3 in ascending order, got %v", names)
	}
}

func testQueryTies(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	for _, d := range []docstore.Data{
		{"name": "first", "order": 1},
		{"name": "second", "order": 1},
		{"name": "zero", "order": 0},
		{"name": "third", "order": 1},
	} {
		if _, err := s.Add(ctx, "skills", d); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	docs, err := s.Query(ctx, "skills", docstore.Query{}.Sort("order", docstore.Asc))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	want := []string{"zero", "first", "second", "third"}
	got := namesOf(docs)
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func testQueryLimit(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Add(ctx, "skills", docstore.Data{"order": i}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	docs, err := s.Query(ctx, "skills", docstore.Query{}.Sort("order", docstore.Desc).Take(2))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 2 || docs[0].Data.Int("order") != 4 || docs[1].Data.Int("order") != 3 {
		t.Errorf("expected orders 4 and 3, got %v", docs)
	}

	empty, err := s.Query(ctx, "nothing-here", docstore.Query{}.Take(1))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty result, got %d documents", len(empty))
	}
}

func testQueryBadField(t *testing.T, s docstore.Store) {
	_, err := s.Query(context.Background(), "posts", docstore.Query{}.Where("slug'; DROP TABLE documents; --", "x"))
	if err == nil {
		t.Fatal("expected an error for an invalid field name")
	}
}

func testCollectionsIsolated(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	if _, err := s.Add(ctx, "skills", docstore.Data{"name": "Go"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	docs, err := s.Query(ctx, "projects", docstore.Query{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no projects, got %d", len(docs))
	}
}

func testNow(t *testing.T, s docstore.Store) {
	now, err := s.Now(context.Background())
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	if now.IsZero() {
		t.Error("expected a non-zero timestamp")
	}
	if now.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", now.Location())
	}
}

func namesOf(docs []docstore.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Data.String("name")
	}
	return out
}
