// Package sqlite is a single-file document store on modernc.org/sqlite for
// local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

const nowLayout = "2006-01-02T15:04:05.000Z"

// DocumentStore keeps every collection in one table with a JSON text column.
type DocumentStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*DocumentStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &DocumentStore{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *DocumentStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    UNIQUE (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_blog_slug_idx
    ON documents (json_extract(data, '$.slug')) WHERE collection = 'blogPosts';
`)
	return err
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("sqlite: get %s/%s: %w", collection, id, err)
	}
	data, err := decode(raw)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("sqlite: decode %s/%s: %w", collection, id, err)
	}
	return docstore.Document{ID: id, Data: data}, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	sqlText, args, err := buildQuery(collection, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("sqlite: scan %s: %w", collection, err)
		}
		data, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("sqlite: decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, docstore.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", collection, err)
	}
	return docs, nil
}

func (s *DocumentStore) Add(ctx context.Context, collection string, data docstore.Data) (string, error) {
	raw, err := json.Marshal(docstore.EncodeData(data))
	if err != nil {
		return "", fmt.Errorf("sqlite: encode %s: %w", collection, err)
	}
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, json(?))`,
		collection, id, string(raw)); err != nil {
		return "", fmt.Errorf("sqlite: add %s: %w", collection, err)
	}
	return id, nil
}

// Set upserts the document. json_patch drops keys patched to null, which
// reads back the same as a stored null.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, data docstore.Data, merge bool) error {
	raw, err := json.Marshal(docstore.EncodeData(data))
	if err != nil {
		return fmt.Errorf("sqlite: encode %s/%s: %w", collection, id, err)
	}
	onConflict := `data = excluded.data`
	if merge {
		onConflict = `data = json_patch(documents.data, excluded.data)`
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data) VALUES (?, ?, json(?))
		ON CONFLICT (collection, id) DO UPDATE
		SET `+onConflict+`, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, collection, id, string(raw)); err != nil {
		return fmt.Errorf("sqlite: set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
		return fmt.Errorf("sqlite: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Now(ctx context.Context) (time.Time, error) {
	var raw string
	if err := s.db.QueryRowContext(ctx,
		`SELECT strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`).Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("sqlite: now: %w", err)
	}
	now, err := time.Parse(nowLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: now: %w", err)
	}
	return now.UTC(), nil
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}

func buildQuery(collection string, q docstore.Query) (string, []any, error) {
	if err := docstore.ValidateQuery(q); err != nil {
		return "", nil, err
	}
	var b strings.Builder
	args := []any{collection}
	b.WriteString("SELECT id, data FROM documents WHERE collection = ?")

	for _, f := range q.Filters {
		switch v := docstore.Encode(f.Value).(type) {
		case nil:
			fmt.Fprintf(&b, " AND json_extract(data, '$.%s') IS NULL", f.Field)
		case bool:
			// JSON booleans extract as 1/0
			n := 0
			if v {
				n = 1
			}
			fmt.Fprintf(&b, " AND json_type(data, '$.%s') IN ('true', 'false') AND json_extract(data, '$.%s') = ?", f.Field, f.Field)
			args = append(args, n)
		case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			fmt.Fprintf(&b, " AND json_extract(data, '$.%s') = ?", f.Field)
			args = append(args, v)
		default:
			return "", nil, fmt.Errorf("sqlite: unsupported filter value for %s: %T", f.Field, v)
		}
	}

	b.WriteString(" ORDER BY ")
	for _, o := range q.OrderBy {
		if o.Direction == docstore.Desc {
			fmt.Fprintf(&b, "json_extract(data, '$.%s') DESC NULLS LAST, ", o.Field)
		} else {
			fmt.Fprintf(&b, "json_extract(data, '$.%s') ASC NULLS FIRST, ", o.Field)
		}
	}
	b.WriteString("seq ASC")

	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return b.String(), args, nil
}

func decode(raw string) (docstore.Data, error) {
	data := docstore.Data{}
	if raw == "" {
		return data, nil
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

var _ docstore.Store = (*DocumentStore)(nil)
