package application

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
)

type fakeIndex struct {
	mu        sync.Mutex
	indexed   map[string]entity.BlogPost
	removed   []string
	failWrite bool
	failQuery bool
	queries   []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]entity.BlogPost{}} }

func (f *fakeIndex) Index(_ context.Context, p entity.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errBoom
	}
	f.indexed[p.ID] = p
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errBoom
	}
	delete(f.indexed, id)
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, size int) ([]PostHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.failQuery {
		return nil, errBoom
	}
	hits := []PostHit{}
	for _, p := range f.indexed {
		hits = append(hits, hitFromPost(p))
	}
	return hits, nil
}

func TestBlogServiceKeepsIndexInStep(t *testing.T) {
	repos, _ := newRepos()
	idx := newFakeIndex()
	svc := NewBlogService(repos.BlogPosts, idx, quietLogger())
	ctx := context.Background()

	published, err := svc.Create(ctx, entity.NewBlogPost{Title: "Hello World", Content: "body", AuthorName: "A", IsPublished: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := idx.indexed[published.ID]; !ok {
		t.Error("expected published post to be indexed")
	}

	draft, err := svc.Create(ctx, entity.NewBlogPost{Title: "Draft", Content: "wip", AuthorName: "A"})
	if err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if _, ok := idx.indexed[draft.ID]; ok {
		t.Error("expected draft not to be indexed")
	}

	published.IsPublished = false
	if err := svc.Update(ctx, published); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok := idx.indexed[published.ID]; ok {
		t.Error("expected unpublished post to leave the index")
	}

	draft.IsPublished = true
	if err := svc.Update(ctx, draft); err != nil {
		t.Fatalf("Update draft: %v", err)
	}
	if _, ok := idx.indexed[draft.ID]; !ok {
		t.Error("expected newly published post to be indexed")
	}

	if err := svc.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := idx.indexed[draft.ID]; ok {
		t.Error("expected deleted post to leave the index")
	}
}

func TestBlogServiceIndexFailureDoesNotFailWrites(t *testing.T) {
	repos, _ := newRepos()
	idx := newFakeIndex()
	idx.failWrite = true
	svc := NewBlogService(repos.BlogPosts, idx, quietLogger())
	ctx := context.Background()

	post, err := svc.Create(ctx, entity.NewBlogPost{Title: "Still Saved", AuthorName: "A", IsPublished: true})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
}

func TestBlogServicePublishedBySlugHidesDrafts(t *testing.T) {
	repos, _ := newRepos()
	svc := NewBlogService(repos.BlogPosts, nil, quietLogger())
	ctx := context.Background()

	draft, err := svc.Create(ctx, entity.NewBlogPost{Title: "Secret", AuthorName: "A"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.PublishedBySlug(ctx, draft.Slug)
	if err != nil || got != nil {
		t.Errorf("expected nil, nil for a draft, got %v, %v", got, err)
	}

	pub, _ := svc.Create(ctx, entity.NewBlogPost{Title: "Public", AuthorName: "A", IsPublished: true})
	got, err = svc.PublishedBySlug(ctx, pub.Slug)
	if err != nil || got == nil || got.ID != pub.ID {
		t.Errorf("expected the published post, got %v, %v", got, err)
	}
}

func TestBlogServiceSearch(t *testing.T) {
	ctx := context.Background()
	seed := func(svc *BlogService) {
		for _, in := range []entity.NewBlogPost{
			{Title: "Go Generics in Practice", Content: "type params", AuthorName: "A", Tags: []string{"go"}, IsPublished: true},
			{Title: "Postgres JSONB", Content: "documents in go", AuthorName: "A", Tags: []string{"sql"}, IsPublished: true},
			{Title: "Go drafts", Content: "hidden", AuthorName: "A"},
		} {
			if _, err := svc.Create(ctx, in); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
	}

	t.Run("scan without index", func(t *testing.T) {
		repos, _ := newRepos()
		svc := NewBlogService(repos.BlogPosts, nil, quietLogger())
		seed(svc)

		hits, err := svc.Search(ctx, "  GO ", 0)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(hits) != 2 {
			t.Fatalf("expected 2 published hits, got %+v", hits)
		}
		for _, h := range hits {
			if strings.Contains(h.Title, "drafts") {
				t.Errorf("expected drafts to be excluded, got %q", h.Title)
			}
		}

		hits, _ = svc.Search(ctx, "go", 1)
		if len(hits) != 1 {
			t.Errorf("expected size to cap results, got %d", len(hits))
		}
	})

	t.Run("empty query", func(t *testing.T) {
		repos, _ := newRepos()
		svc := NewBlogService(repos.BlogPosts, nil, quietLogger())
		hits, err := svc.Search(ctx, "   ", 10)
		if err != nil || hits == nil || len(hits) != 0 {
			t.Errorf("expected empty non-nil hits, got %v, %v", hits, err)
		}
	})

	t.Run("index used when configured", func(t *testing.T) {
		repos, _ := newRepos()
		idx := newFakeIndex()
		svc := NewBlogService(repos.BlogPosts, idx, quietLogger())
		seed(svc)

		hits, err := svc.Search(ctx, "go", 500)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(idx.queries) != 1 || len(hits) != 2 {
			t.Errorf("expected one index query returning 2 hits, got %d queries and %d hits", len(idx.queries), len(hits))
		}
	})

	t.Run("index failure falls back to scan", func(t *testing.T) {
		repos, _ := newRepos()
		idx := newFakeIndex()
		svc := NewBlogService(repos.BlogPosts, idx, quietLogger())
		seed(svc)
		idx.failQuery = true

		hits, err := svc.Search(ctx, "jsonb", 10)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(hits) != 1 || hits[0].Title != "Postgres JSONB" {
			t.Errorf("expected the scan result, got %+v", hits)
		}
	})
}

func TestReindexPushesPublishedPosts(t *testing.T) {
	repos, _ := newRepos()
	ctx := context.Background()
	plain := NewBlogService(repos.BlogPosts, nil, quietLogger())
	plain.Create(ctx, entity.NewBlogPost{Title: "One", AuthorName: "A", IsPublished: true})
	plain.Create(ctx, entity.NewBlogPost{Title: "Two", AuthorName: "A"})

	idx := newFakeIndex()
	n, err := NewBlogService(repos.BlogPosts, idx, quietLogger()).Reindex(ctx)
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if n != 1 || len(idx.indexed) != 1 {
		t.Errorf("expected 1 post indexed, got n=%d indexed=%d", n, len(idx.indexed))
	}
}
