package seed

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
)

type memStore struct {
	docs map[string]docstore.Doc
}

func (m *memStore) Get(ctx context.Context, scope, collection, id string) (json.RawMessage, error) {
	d, ok := m.docs[scope+"|"+collection+"|"+id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return d.Body, nil
}

func (m *memStore) List(ctx context.Context, scope, collection string) ([]docstore.Doc, error) {
	var out []docstore.Doc
	for _, d := range m.docs {
		if d.Scope == scope && d.Collection == collection {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) ListByDataset(ctx context.Context, collection, datasetID string) ([]docstore.Doc, error) {
	var out []docstore.Doc
	for _, d := range m.docs {
		if d.Scope == "" && d.Collection == collection && d.DatasetID == datasetID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) Apply(ctx context.Context, b *docstore.Batch) error {
	for _, d := range b.Writes() {
		m.docs[d.Scope+"|"+d.Collection+"|"+d.ID] = d
	}
	return nil
}

func (m *memStore) HealthPing(ctx context.Context) error { return nil }
func (m *memStore) Close() error                         { return nil }

func TestEnsureDefaultDataset(t *testing.T) {
	store := &memStore{docs: map[string]docstore.Doc{}}
	ctx := context.Background()

	seeded, err := EnsureDefaultDataset(ctx, store)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected first call to seed")
	}

	counts := map[string]int{}
	for _, col := range []string{
		docstore.ColCompanies, docstore.ColWrestlers, docstore.ColTitles,
		docstore.ColTVShows, docstore.ColEvents, docstore.ColRelationships,
	} {
		docs, err := store.ListByDataset(ctx, col, DefaultDatasetID)
		if err != nil {
			t.Fatalf("list %s: %v", col, err)
		}
		counts[col] = len(docs)
	}
	want := map[string]int{
		docstore.ColCompanies:     1,
		docstore.ColWrestlers:     10,
		docstore.ColTitles:        2,
		docstore.ColTVShows:       1,
		docstore.ColEvents:        12,
		docstore.ColRelationships: 2,
	}
	for col, n := range want {
		if counts[col] != n {
			t.Errorf("%s: %d docs, want %d", col, counts[col], n)
		}
	}

	// The calendar carries two Major events and one Flagship.
	events, _ := store.ListByDataset(ctx, docstore.ColEvents, DefaultDatasetID)
	tiers := map[string]int{}
	for _, d := range events {
		var ev model.CalendarEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		tiers[ev.EventTier]++
	}
	if tiers[model.TierMajor] != 2 || tiers[model.TierFlagship] != 1 || tiers[model.TierMonthly] != 9 {
		t.Fatalf("tier distribution: %v", tiers)
	}

	// Relationships reference seeded wrestler ids.
	wrestlers, _ := store.ListByDataset(ctx, docstore.ColWrestlers, DefaultDatasetID)
	ids := map[string]bool{}
	for _, d := range wrestlers {
		ids[d.ID] = true
	}
	rels, _ := store.ListByDataset(ctx, docstore.ColRelationships, DefaultDatasetID)
	for _, d := range rels {
		var r model.Relationship
		if err := json.Unmarshal(d.Body, &r); err != nil {
			t.Fatalf("decode relationship: %v", err)
		}
		if !ids[r.PersonAID] || !ids[r.PersonBID] {
			t.Fatalf("relationship references unknown wrestlers: %+v", r)
		}
	}
}

func TestEnsureDefaultDatasetIsIdempotent(t *testing.T) {
	store := &memStore{docs: map[string]docstore.Doc{}}
	ctx := context.Background()

	if _, err := EnsureDefaultDataset(ctx, store); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	before := len(store.docs)

	seeded, err := EnsureDefaultDataset(ctx, store)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if seeded {
		t.Fatal("second call must not reseed")
	}
	if len(store.docs) != before {
		t.Fatalf("doc count changed: %d -> %d", before, len(store.docs))
	}
}
