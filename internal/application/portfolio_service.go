package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
)

// DefaultHomePosts is how many published posts the home page shows.
const DefaultHomePosts = 3

// Home is everything the landing page renders.
type Home struct {
	Profile     *entity.Profile     `json:"profile"`
	Skills      []entity.Skill      `json:"skills"`
	Experiences []entity.Experience `json:"experiences"`
	Projects    []entity.Project    `json:"projects"`
	LatestPosts []entity.BlogPost   `json:"latestPosts"`
}

type PortfolioService struct {
	Repos  ContentRepos
	Logger *logrus.Logger
}

func NewPortfolioService(repos ContentRepos, logger *logrus.Logger) *PortfolioService {
	return &PortfolioService{Repos: repos, Logger: logger}
}

// Home reads the five home page sections concurrently and returns only when
// all of them succeeded. The first failure cancels the remaining reads.
func (s *PortfolioService) Home(ctx context.Context, latest int) (*Home, error) {
	if latest <= 0 {
		latest = DefaultHomePosts
	}
	var h Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Repos.Profile.Get(gctx)
		h.Profile = p
		return err
	})
	g.Go(func() error {
		v, err := s.Repos.Skills.List(gctx)
		h.Skills = v
		return err
	})
	g.Go(func() error {
		v, err := s.Repos.Experiences.List(gctx)
		h.Experiences = v
		return err
	})
	g.Go(func() error {
		v, err := s.Repos.Projects.List(gctx)
		if err == nil {
			entity.SortProjectsForDisplay(v)
		}
		h.Projects = v
		return err
	})
	g.Go(func() error {
		v, err := s.Repos.BlogPosts.ListPosts(gctx, latest, true)
		h.LatestPosts = v
		return err
	})
	if err := g.Wait(); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("home aggregate failed")
		}
		return nil, err
	}
	return &h, nil
}

// Projects lists projects in display order: featured first, then by order.
func (s *PortfolioService) Projects(ctx context.Context) ([]entity.Project, error) {
	projects, err := s.Repos.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	entity.SortProjectsForDisplay(projects)
	return projects, nil
}
