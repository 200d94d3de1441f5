package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/content"
)

func counts(store interface{ Len(string) int }) map[string]int {
	return map[string]int{
		content.CollectionProfile:     store.Len(content.CollectionProfile),
		content.CollectionSkills:      store.Len(content.CollectionSkills),
		content.CollectionExperiences: store.Len(content.CollectionExperiences),
		content.CollectionProjects:    store.Len(content.CollectionProjects),
		content.CollectionBlogPosts:   store.Len(content.CollectionBlogPosts),
	}
}

func TestSeederRunIsIdempotent(t *testing.T) {
	repos, store := newRepos()
	s := NewSeeder(repos, quietLogger())

	results, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	first := counts(store)
	want := map[string]int{
		content.CollectionProfile:     1,
		content.CollectionSkills:      len(content.DefaultSkills()),
		content.CollectionExperiences: len(content.DefaultExperiences()),
		content.CollectionProjects:    len(content.DefaultProjects()),
		content.CollectionBlogPosts:   len(content.DefaultPosts()),
	}
	for c, n := range want {
		if first[c] != n {
			t.Errorf("%s: expected %d records, got %d", c, n, first[c])
		}
	}

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := counts(store)
	for c, n := range first {
		if second[c] != n {
			t.Errorf("%s: expected %d records after second run, got %d", c, n, second[c])
		}
	}
}

func TestSeederRunsOnlySelectedSteps(t *testing.T) {
	repos, store := newRepos()
	s := NewSeeder(repos, quietLogger())

	results, err := s.Run(context.Background(), "Skills", " blog ", "skills")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if store.Len(content.CollectionSkills) == 0 || store.Len(content.CollectionBlogPosts) == 0 {
		t.Error("expected skills and blog to be seeded")
	}
	if store.Len(content.CollectionProfile) != 0 || store.Len(content.CollectionProjects) != 0 {
		t.Error("expected other collections to stay empty")
	}
}

func TestSeederRejectsUnknownStep(t *testing.T) {
	repos, store := newRepos()
	s := NewSeeder(repos, quietLogger())

	_, err := s.Run(context.Background(), "skills", "widgets")
	if !errors.Is(err, ErrUnknownSeedStep) {
		t.Fatalf("expected ErrUnknownSeedStep, got %v", err)
	}
	if store.Len(content.CollectionSkills) != 0 {
		t.Error("expected nothing to run when a step name is unknown")
	}
}

func TestSeederFailureDoesNotStopOtherSteps(t *testing.T) {
	var ran atomic.Int32
	ok := InitializerFunc(func(context.Context) error { ran.Add(1); return nil })
	s := &Seeder{
		Logger: quietLogger(),
		Steps: []SeedStep{
			{Name: "a", Init: ok},
			{Name: "broken", Init: InitializerFunc(func(context.Context) error { ran.Add(1); return errBoom })},
			{Name: "c", Init: ok},
		},
	}

	results, err := s.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected joined error to wrap errBoom, got %v", err)
	}
	if ran.Load() != 3 {
		t.Errorf("expected all 3 steps to run, got %d", ran.Load())
	}
	for _, r := range results {
		failed := r.Error != ""
		if failed != (r.Name == "broken") {
			t.Errorf("unexpected result %+v", r)
		}
	}
}
