package application

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/content"
)

func TestHomeAggregatesAllSections(t *testing.T) {
	repos, _ := newRepos()
	ctx := context.Background()
	if _, err := NewSeeder(repos, quietLogger()).Run(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h, err := NewPortfolioService(repos, quietLogger()).Home(ctx, 1)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if h.Profile == nil || h.Profile.Name == "" {
		t.Error("expected the seeded profile")
	}
	if len(h.Skills) != len(content.DefaultSkills()) {
		t.Errorf("expected %d skills, got %d", len(content.DefaultSkills()), len(h.Skills))
	}
	if len(h.Experiences) != len(content.DefaultExperiences()) {
		t.Errorf("expected %d experiences, got %d", len(content.DefaultExperiences()), len(h.Experiences))
	}
	if len(h.LatestPosts) != 1 {
		t.Errorf("expected 1 latest post, got %d", len(h.LatestPosts))
	}
	for i := 1; i < len(h.Projects); i++ {
		if h.Projects[i].Featured && !h.Projects[i-1].Featured {
			t.Fatalf("expected featured projects first, got %+v", h.Projects)
		}
	}
}

func TestHomeFailsWhenAnySectionFails(t *testing.T) {
	repos, _ := newRepos()
	repos.Skills = failingSkills{}

	h, err := NewPortfolioService(repos, quietLogger()).Home(context.Background(), 0)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if h != nil {
		t.Error("expected no partial result")
	}
}
