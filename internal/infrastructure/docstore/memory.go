package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryDoc struct {
	seq  uint64
	data Data
}

// Memory is an in-process Store. It keeps documents in insertion order so
// that equal sort keys are stable.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memoryDoc
	seq         uint64
	clock       func() time.Time
	newID       func() string
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock replaces the wall clock used by Now.
func WithClock(clock func() time.Time) MemoryOption {
	return func(m *Memory) { m.clock = clock }
}

// WithIDGenerator replaces the uuid-based id generator used by Add.
func WithIDGenerator(gen func() string) MemoryOption {
	return func(m *Memory) { m.newID = gen }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		collections: make(map[string]map[string]*memoryDoc),
		clock:       time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: copyData(doc.data)}, nil
}

func (m *Memory) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}
	filters := make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		filters[i] = Filter{Field: f.Field, Value: Encode(f.Value)}
	}

	m.mu.RLock()
	type hit struct {
		id  string
		doc *memoryDoc
	}
	var hits []hit
	for id, doc := range m.collections[collection] {
		if matches(doc.data, filters) {
			hits = append(hits, hit{id: id, doc: doc})
		}
	}
	out := make([]Document, 0, len(hits))
	sort.Slice(hits, func(i, j int) bool {
		for _, o := range q.OrderBy {
			c := Compare(hits[i].doc.data[o.Field], hits[j].doc.data[o.Field])
			if c == 0 {
				continue
			}
			if o.Direction == Desc {
				return c > 0
			}
			return c < 0
		}
		return hits[i].doc.seq < hits[j].doc.seq
	})
	for _, h := range hits {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		out = append(out, Document{ID: h.id, Data: copyData(h.doc.data)})
	}
	m.mu.RUnlock()
	return out, nil
}

func (m *Memory) Add(ctx context.Context, collection string, data Data) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := m.newID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, EncodeData(data))
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, data Data, merge bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	encoded := EncodeData(data)
	existing, ok := m.collections[collection][id]
	if !ok {
		m.put(collection, id, encoded)
		return nil
	}
	if !merge {
		existing.data = encoded
		return nil
	}
	for k, v := range encoded {
		existing.data[k] = v
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

func (m *Memory) Now(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return m.clock().UTC(), nil
}

func (m *Memory) Close() error { return nil }

// Len returns the number of documents in collection.
func (m *Memory) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

func (m *Memory) put(collection, id string, data Data) {
	c, ok := m.collections[collection]
	if !ok {
		c = make(map[string]*memoryDoc)
		m.collections[collection] = c
	}
	m.seq++
	c[id] = &memoryDoc{seq: m.seq, data: data}
}

func matches(d Data, filters []Filter) bool {
	for _, f := range filters {
		if !Equal(d[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func copyData(d Data) Data {
	out := make(Data, len(d))
	for k, v := range d {
		if s, ok := v.([]string); ok {
			v = append([]string(nil), s...)
		}
		out[k] = v
	}
	return out
}

var _ Store = (*Memory)(nil)
