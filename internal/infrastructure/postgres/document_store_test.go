package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore/docstoretest"
)

func TestDocumentStoreContract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	docstoretest.Run(t, func(t *testing.T) docstore.Store {
		ctx := context.Background()
		pool, err := NewPool(ctx, dsn, PoolOptions{MaxConns: 4, MinConns: 1, MaxConnLifetime: time.Minute})
		if err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
		if _, err := pool.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS documents (
				seq BIGSERIAL,
				collection TEXT NOT NULL,
				id TEXT NOT NULL,
				data JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (collection, id)
			)`); err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
		if _, err := pool.Exec(ctx, `TRUNCATE documents`); err != nil {
			t.Fatalf("failed to truncate: %v", err)
		}
		return NewDocumentStore(pool)
	})
}

func TestBuildQuery(t *testing.T) {
	q := docstore.Query{}.
		Where("isPublished", true).
		Where("excerpt", nil).
		Sort("publishedAt", docstore.Desc).
		Take(3)

	sqlText, args, err := buildQuery("blogPosts", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"collection = $1",
		"data->'isPublished' = $2::jsonb",
		"data->'excerpt' IS NULL",
		"ORDER BY data->'publishedAt' DESC NULLS LAST, seq ASC",
		"LIMIT $3",
	} {
		if !strings.Contains(sqlText, want) {
			t.Errorf("expected query to contain %q, got %s", want, sqlText)
		}
	}
	if len(args) != 3 || args[0] != "blogPosts" || args[1] != "true" || args[2] != 3 {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildQueryRejectsInjectedField(t *testing.T) {
	_, _, err := buildQuery("skills", docstore.Query{}.Sort("order'--", docstore.Asc))
	if err == nil {
		t.Fatal("expected an error for an invalid field")
	}
}
