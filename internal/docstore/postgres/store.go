package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    scope       TEXT NOT NULL,
    collection  TEXT NOT NULL,
    doc_id      TEXT NOT NULL,
    dataset_id  TEXT,
    body        JSONB NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (scope, collection, doc_id)
);
CREATE INDEX IF NOT EXISTS idx_documents_dataset ON documents (collection, dataset_id);
`

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type pgStore struct {
	db *sql.DB
}

// New opens a Postgres-backed document store and applies the schema.
func New(dsn string) (docstore.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires a store onto an existing connection.
func NewWithDB(db *sql.DB) (docstore.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &pgStore{db: db}, nil
}

func (s *pgStore) Get(ctx context.Context, scope, collection, id string) (json.RawMessage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE scope = $1 AND collection = $2 AND doc_id = $3`,
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

func (s *pgStore) List(ctx context.Context, scope, collection string) ([]docstore.Doc, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, dataset_id, body FROM documents WHERE scope = $1 AND collection = $2 ORDER BY doc_id`,
		scope, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocs(rows, scope, collection)
}

func (s *pgStore) ListByDataset(ctx context.Context, collection, datasetID string) ([]docstore.Doc, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, dataset_id, body FROM documents WHERE scope = '' AND collection = $1 AND dataset_id = $2 ORDER BY doc_id`,
		collection, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocs(rows, "", collection)
}

func (s *pgStore) Apply(ctx context.Context, b *docstore.Batch) error {
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
            VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (scope, collection, doc_id)
            DO UPDATE SET dataset_id = EXCLUDED.dataset_id, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
			w.Scope, w.Collection, w.ID, nullable(w.DatasetID), []byte(w.Body), now)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *pgStore) Close() error { return s.db.Close() }

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
