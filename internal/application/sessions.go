package application

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

// Session is the server-side half of an admin login.
type Session struct {
	ID        string    `json:"sid"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps admin sessions by session id.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	// Get returns nil, nil when the session does not exist or expired.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func sessionKey(sid string) string {
	return "admin:session:" + sid
}

// RedisSessions stores each session as a JSON value with a TTL.
type RedisSessions struct {
	RDB *redis.Client
}

func NewRedisSessions(rdb *redis.Client) *RedisSessions {
	return &RedisSessions{RDB: rdb}
}

func (r *RedisSessions) Save(ctx context.Context, s Session, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, r.RDB, sessionKey(s.ID), s, ttl)
}

func (r *RedisSessions) Get(ctx context.Context, id string) (*Session, error) {
	return helpers.RedisGetJSON[Session](ctx, r.RDB, sessionKey(id))
}

func (r *RedisSessions) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, r.RDB, sessionKey(id))
}

// MemorySessions is a process-local SessionStore used when Redis is not
// reachable. Sessions do not survive a restart.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	s       Session
	expires time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: map[string]memorySession{}, now: time.Now}
}

func (m *MemorySessions) Save(_ context.Context, s Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = memorySession{s: s, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemorySessions) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(ms.expires) {
		delete(m.sessions, id)
		return nil, nil
	}
	s := ms.s
	return &s, nil
}

func (m *MemorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
