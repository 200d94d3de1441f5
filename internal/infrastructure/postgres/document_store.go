package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// DocumentStore keeps every collection in the single JSONB table created by
// db/migrations/000001_create_documents.up.sql.
type DocumentStore struct {
	pool *pgxpool.Pool
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var raw []byte
	row := s.pool.QueryRow(ctx, `
		SELECT data
		FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, fmt.Errorf("postgres: get %s/%s: %w", collection, id, err)
	}
	data, err := decode(raw)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("postgres: decode %s/%s: %w", collection, id, err)
	}
	return docstore.Document{ID: id, Data: data}, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	sqlText, args, err := buildQuery(collection, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", collection, err)
		}
		data, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("postgres: decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, docstore.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: query %s: %w", collection, err)
	}
	return docs, nil
}

func (s *DocumentStore) Add(ctx context.Context, collection string, data docstore.Data) (string, error) {
	raw, err := json.Marshal(docstore.EncodeData(data))
	if err != nil {
		return "", fmt.Errorf("postgres: encode %s: %w", collection, err)
	}
	id := uuid.NewString()
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
	`, collection, id, string(raw)); err != nil {
		return "", fmt.Errorf("postgres: add %s: %w", collection, err)
	}
	return id, nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, data docstore.Data, merge bool) error {
	raw, err := json.Marshal(docstore.EncodeData(data))
	if err != nil {
		return fmt.Errorf("postgres: encode %s/%s: %w", collection, id, err)
	}
	onConflict := `data = EXCLUDED.data`
	if merge {
		onConflict = `data = documents.data || EXCLUDED.data`
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE
		SET `+onConflict+`, updated_at = now()
	`, collection, id, string(raw)); err != nil {
		return fmt.Errorf("postgres: set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.pool.Exec(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id); err != nil {
		return fmt.Errorf("postgres: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := s.pool.QueryRow(ctx, `SELECT now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("postgres: now: %w", err)
	}
	return now.UTC(), nil
}

// Close releases the pool.
func (s *DocumentStore) Close() error {
	s.pool.Close()
	return nil
}

// buildQuery renders q as SQL. Field names are spliced into JSON paths, so
// they are validated first; values are always bound.
func buildQuery(collection string, q docstore.Query) (string, []any, error) {
	if err := docstore.ValidateQuery(q); err != nil {
		return "", nil, err
	}
	var b strings.Builder
	args := []any{collection}
	b.WriteString("SELECT id, data FROM documents WHERE collection = $1")

	for _, f := range q.Filters {
		value := docstore.Encode(f.Value)
		if value == nil {
			fmt.Fprintf(&b, " AND (data->'%s' IS NULL OR data->'%s' = 'null'::jsonb)", f.Field, f.Field)
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: encode filter %s: %w", f.Field, err)
		}
		args = append(args, string(raw))
		fmt.Fprintf(&b, " AND data->'%s' = $%d::jsonb", f.Field, len(args))
	}

	b.WriteString(" ORDER BY ")
	for _, o := range q.OrderBy {
		if o.Direction == docstore.Desc {
			fmt.Fprintf(&b, "data->'%s' DESC NULLS LAST, ", o.Field)
		} else {
			fmt.Fprintf(&b, "data->'%s' ASC NULLS FIRST, ", o.Field)
		}
	}
	b.WriteString("seq ASC")

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args, nil
}

func decode(raw []byte) (docstore.Data, error) {
	data := docstore.Data{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

var _ docstore.Store = (*DocumentStore)(nil)
