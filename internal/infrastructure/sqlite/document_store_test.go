package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore/docstoretest"
)

func TestDocumentStoreContract(t *testing.T) {
	docstoretest.Run(t, func(t *testing.T) docstore.Store {
		s, err := Open(filepath.Join(t.TempDir(), "content.db"))
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		return s
	})
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "content.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	id, err := s.Add(context.Background(), "skills", docstore.Data{"name": "Go"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()
	doc, err := s.Get(context.Background(), "skills", id)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if doc.Data.String("name") != "Go" {
		t.Errorf("expected Go, got %q", doc.Data.String("name"))
	}
}

func TestBooleanFilterIgnoresNumbers(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if _, err := s.Add(ctx, "things", docstore.Data{"flag": 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add(ctx, "things", docstore.Data{"flag": true}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	docs, err := s.Query(ctx, "things", docstore.Query{}.Where("flag", true))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected only the boolean document, got %d", len(docs))
	}
}
