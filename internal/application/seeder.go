package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
)

// Seed step names, as accepted by Seeder.Run and the seed CLI.
const (
	SeedProfile     = "profile"
	SeedSkills      = "skills"
	SeedExperiences = "experiences"
	SeedProjects    = "projects"
	SeedBlog        = "blog"
)

var ErrUnknownSeedStep = errors.New("unknown seed step")

var (
	seedRuns     = expvar.NewInt("seed_runs")
	seedFailures = expvar.NewMap("seed_failures")
	seedLastRun  = expvar.NewString("seed_last_run")
)

// InitializerFunc adapts a plain function to repository.Initializer.
type InitializerFunc func(ctx context.Context) error

func (f InitializerFunc) InitializeIfEmpty(ctx context.Context) error { return f(ctx) }

type SeedStep struct {
	Name string
	Init repository.Initializer
}

// SeedResult reports one initializer of a run.
type SeedResult struct {
	Name     string        `json:"name"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Seeder fills empty content collections with default records. Steps are
// independent and run concurrently; one failing step never stops the others.
type Seeder struct {
	Steps  []SeedStep
	Logger *logrus.Logger
}

func NewSeeder(repos ContentRepos, logger *logrus.Logger) *Seeder {
	return &Seeder{
		Logger: logger,
		Steps: []SeedStep{
			{Name: SeedProfile, Init: repos.Profile},
			{Name: SeedSkills, Init: repos.Skills},
			{Name: SeedExperiences, Init: repos.Experiences},
			{Name: SeedProjects, Init: repos.Projects},
			{Name: SeedBlog, Init: InitializerFunc(repos.BlogPosts.InitializeDefaultPosts)},
		},
	}
}

// StepNames lists the steps in registration order.
func (s *Seeder) StepNames() []string {
	names := make([]string, 0, len(s.Steps))
	for _, st := range s.Steps {
		names = append(names, st.Name)
	}
	return names
}

// Run executes every step, or only the named ones, and waits for all of them.
// The returned error joins the failures of individual steps; results are
// always complete.
func (s *Seeder) Run(ctx context.Context, only ...string) ([]SeedResult, error) {
	steps, err := s.selectSteps(only)
	if err != nil {
		return nil, err
	}

	seedRuns.Add(1)
	seedLastRun.Set(time.Now().UTC().Format(time.RFC3339))

	results := make([]SeedResult, len(steps))
	errs := make([]error, len(steps))

	var wg sync.WaitGroup
	for i, st := range steps {
		wg.Add(1)
		go func(i int, st SeedStep) {
			defer wg.Done()
			start := time.Now()
			err := st.Init.InitializeIfEmpty(ctx)
			results[i] = SeedResult{Name: st.Name, Duration: time.Since(start)}
			if err != nil {
				results[i].Error = err.Error()
				errs[i] = fmt.Errorf("%s: %w", st.Name, err)
				seedFailures.Add(st.Name, 1)
				if s.Logger != nil {
					s.Logger.WithError(err).WithField("initializer", st.Name).Error("seed step failed")
				}
			}
		}(i, st)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

func (s *Seeder) selectSteps(only []string) ([]SeedStep, error) {
	if len(only) == 0 {
		return s.Steps, nil
	}
	byName := make(map[string]SeedStep, len(s.Steps))
	for _, st := range s.Steps {
		byName[st.Name] = st
	}
	seen := make(map[string]bool, len(only))
	steps := make([]SeedStep, 0, len(only))
	for _, name := range only {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		st, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownSeedStep, name, strings.Join(s.StepNames(), ", "))
		}
		seen[name] = true
		steps = append(steps, st)
	}
	return steps, nil
}
