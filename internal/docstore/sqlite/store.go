package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    scope       TEXT NOT NULL,
    collection  TEXT NOT NULL,
    doc_id      TEXT NOT NULL,
    dataset_id  TEXT,
    body        BLOB NOT NULL,
    updated_at  TIMESTAMP NOT NULL,
    PRIMARY KEY (scope, collection, doc_id)
);
CREATE INDEX IF NOT EXISTS idx_documents_dataset ON documents (collection, dataset_id);
`

type sqliteStore struct {
	db *sql.DB
}

// New opens (or creates) a SQLite-backed document store.
func New(path string) (docstore.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires a store onto an existing connection (used by tests and the
// factory) and applies the schema.
func NewWithDB(db *sql.DB) (docstore.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, scope, collection, id string) (json.RawMessage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE scope = ? AND collection = ? AND doc_id = ?`,
		scope, collection, id)
	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return body, nil
}

func (s *sqliteStore) List(ctx context.Context, scope, collection string) ([]docstore.Doc, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, dataset_id, body FROM documents WHERE scope = ? AND collection = ? ORDER BY doc_id`,
		scope, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocs(rows, scope, collection)
}

func (s *sqliteStore) ListByDataset(ctx context.Context, collection, datasetID string) ([]docstore.Doc, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, dataset_id, body FROM documents WHERE scope = '' AND collection = ? AND dataset_id = ? ORDER BY doc_id`,
		collection, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocs(rows, "", collection)
}

func (s *sqliteStore) Apply(ctx context.Context, b *docstore.Batch) error {
	if b == nil || b.Len() == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, w := range b.Writes() {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO documents (scope, collection, doc_id, dataset_id, body, updated_at)
            VALUES (?,?,?,?,?,?)
            ON CONFLICT (scope, collection, doc_id)
            DO UPDATE SET dataset_id = excluded.dataset_id, body = excluded.body, updated_at = excluded.updated_at`,
			w.Scope, w.Collection, w.ID, nullable(w.DatasetID), []byte(w.Body), now)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func scanDocs(rows *sql.Rows, scope, collection string) ([]docstore.Doc, error) {
	var out []docstore.Doc
	for rows.Next() {
		var d docstore.Doc
		d.Scope = scope
		d.Collection = collection
		var datasetID sql.NullString
		var body []byte
		if err := rows.Scan(&d.ID, &datasetID, &body); err != nil {
			return nil, err
		}
		d.DatasetID = datasetID.String
		d.Body = body
		out = append(out, d)
	}
	return out, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
