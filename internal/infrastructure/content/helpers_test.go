package content

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

var errDown = errors.New("connection refused")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// tickingClock advances one second on every read so that consecutive
// timestamps are distinct and ordered.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTickingClock() *tickingClock {
	return &tickingClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newMemoryStore() (*docstore.Memory, *tickingClock) {
	clock := newTickingClock()
	return docstore.NewMemory(docstore.WithClock(clock.Now)), clock
}

// downStore fails every call as an unreachable backend would.
type downStore struct{}

func (downStore) Get(context.Context, string, string) (docstore.Document, error) {
	return docstore.Document{}, errDown
}
func (downStore) Query(context.Context, string, docstore.Query) ([]docstore.Document, error) {
	return nil, errDown
}
func (downStore) Add(context.Context, string, docstore.Data) (string, error) { return "", errDown }
func (downStore) Set(context.Context, string, string, docstore.Data, bool) error {
	return errDown
}
func (downStore) Delete(context.Context, string, string) error  { return errDown }
func (downStore) Now(context.Context) (time.Time, error)      { return time.Time{}, errDown }
func (downStore) Close() error                                 { return nil }
