// Package docstore defines the document-store contract the game core runs
// against: point reads by collection+id, equality-filtered collection
// queries, and atomic multi-document batch writes. Adapters live under
// docstore/sqlite and docstore/postgres.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Doc is one stored document. Scope partitions documents the way the
// original layout nested subcollections: "" for global template data,
// UserScope(u) for a user's save list, SaveScope(u, s) for save-scoped
// collections. DatasetID is an indexed attribute used only by template
// collections.
type Doc struct {
	Scope      string
	Collection string
	ID         string
	DatasetID  string
	Body       json.RawMessage
}

// Batch accumulates full-document sets. Apply executes every write in one
// transaction: a committed batch is all-or-nothing.
type Batch struct {
	writes []Doc
}

// Set queues a full-document write. Later sets of the same document within
// one batch overwrite earlier ones at commit time (last write wins).
func (b *Batch) Set(scope, collection, id, datasetID string, body json.RawMessage) {
	b.writes = append(b.writes, Doc{Scope: scope, Collection: collection, ID: id, DatasetID: datasetID, Body: body})
}

// SetJSON marshals v and queues it.
func (b *Batch) SetJSON(scope, collection, id, datasetID string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.Set(scope, collection, id, datasetID, body)
	return nil
}

// Len reports the number of queued writes.
func (b *Batch) Len() int { return len(b.writes) }

// Writes exposes the queued writes to adapters.
func (b *Batch) Writes() []Doc { return b.writes }

// Store is the persistence contract for the game core.
type Store interface {
	// Get returns a document body, or model.ErrNotFound.
	Get(ctx context.Context, scope, collection, id string) (json.RawMessage, error)
	// List returns every document in a scoped collection.
	List(ctx context.Context, scope, collection string) ([]Doc, error)
	// ListByDataset returns global-scope documents matching a dataset id.
	ListByDataset(ctx context.Context, collection, datasetID string) ([]Doc, error)
	// Apply commits a batch atomically. An empty batch is a no-op.
	Apply(ctx context.Context, b *Batch) error
	// HealthPing verifies connectivity.
	HealthPing(ctx context.Context) error
	Close() error
}

// UserScope is where a user's player_saves documents live.
func UserScope(userID string) string {
	return fmt.Sprintf("users/%s", userID)
}

// SaveScope is where one save's save_* collections live.
func SaveScope(userID, saveID string) string {
	return fmt.Sprintf("users/%s/saves/%s", userID, saveID)
}

// Decode unmarshals a document body into v, dropping unknown fields and
// defaulting missing ones. Typed structs in internal/model are the read
// boundary for the loosely shaped documents.
func Decode(body json.RawMessage, v interface{}) error {
	return json.Unmarshal(body, v)
}
