package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/content"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

var errBoom = errors.New("boom")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRepos() (ContentRepos, *docstore.Memory) {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
	store := docstore.NewMemory(docstore.WithClock(clock))
	r := content.NewRepositories(store, quietLogger())
	return ContentRepos{
		Profile:     r.Profile,
		Skills:      r.Skills,
		Experiences: r.Experiences,
		Projects:    r.Projects,
		BlogPosts:   r.BlogPosts,
		Contact:     r.Contact,
	}, store
}

// failingSkills fails every read; the rest of the interface is never called.
type failingSkills struct {
	repository.SkillRepository
}

func (failingSkills) List(context.Context) ([]entity.Skill, error) { return nil, errBoom }
