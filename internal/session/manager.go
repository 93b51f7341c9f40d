// Package session owns the lifecycle of a loaded game: creating and loading
// saves, advancing the calendar, running shows, and the career ledger. A
// Session is the single writer of its world snapshot; every persisted
// mutation is mirrored into the snapshot so callers never re-read the store
// to see their own writes.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/kayfabe/kayfabe-booker/internal/config"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
	"github.com/kayfabe/kayfabe-booker/internal/narrative"
	"github.com/kayfabe/kayfabe-booker/internal/worldgen"
)

// Manager creates and loads sessions for users.
type Manager struct {
	store docstore.Store
	gen   narrative.Generator
	cfg   *config.Config
	log   zerolog.Logger
}

// NewManager wires a manager over the document store and narrative service.
func NewManager(store docstore.Store, gen narrative.Generator, cfg *config.Config, log zerolog.Logger) *Manager {
	return &Manager{store: store, gen: gen, cfg: cfg, log: log}
}

// ListDatasets returns every template dataset.
func (m *Manager) ListDatasets(ctx context.Context) ([]*model.Dataset, error) {
	return loadAll[model.Dataset](ctx, m.store, "", docstore.ColDatasets)
}

// ListSaves returns a user's saves, most recently played first.
func (m *Manager) ListSaves(ctx context.Context, userID string) ([]*model.PlayerSave, error) {
	saves, err := loadAll[model.PlayerSave](ctx, m.store, docstore.UserScope(userID), docstore.ColPlayerSaves)
	if err != nil {
		return nil, err
	}
	sort.Slice(saves, func(i, j int) bool {
		return saves[i].LastPlayed.After(saves[j].LastPlayed)
	})
	return saves, nil
}

// CreateAndEnter instantiates a fresh world from a dataset and loads it.
func (m *Manager) CreateAndEnter(ctx context.Context, userID, datasetID, saveName string) (*Session, error) {
	save, err := worldgen.Instantiate(ctx, m.store, userID, datasetID, saveName, worldgen.Options{BaseYear: m.cfg.BaseYear})
	if err != nil {
		return nil, err
	}
	return m.Load(ctx, userID, save.ID)
}

// Load reads a save and every save-scoped collection into a world snapshot
// and returns a live session over it. Returns model.ErrNotFound if the save
// does not exist.
func (m *Manager) Load(ctx context.Context, userID, saveID string) (*Session, error) {
	body, err := m.store.Get(ctx, docstore.UserScope(userID), docstore.ColPlayerSaves, saveID)
	if err != nil {
		return nil, fmt.Errorf("load save %s: %w", saveID, err)
	}
	world := &model.WorldSnapshot{}
	if err := docstore.Decode(body, &world.Save); err != nil {
		return nil, err
	}

	scope := docstore.SaveScope(userID, saveID)
	if world.Companies, err = loadAll[model.Company](ctx, m.store, scope, docstore.ColSaveCompanies); err != nil {
		return nil, err
	}
	if world.Wrestlers, err = loadAll[model.Wrestler](ctx, m.store, scope, docstore.ColSaveWrestlers); err != nil {
		return nil, err
	}
	if world.Staff, err = loadAll[model.Staff](ctx, m.store, scope, docstore.ColSaveStaff); err != nil {
		return nil, err
	}
	if world.Titles, err = loadAll[model.Title](ctx, m.store, scope, docstore.ColSaveTitles); err != nil {
		return nil, err
	}
	if world.TVDeals, err = loadAll[model.TVDeal](ctx, m.store, scope, docstore.ColSaveTVDeals); err != nil {
		return nil, err
	}
	if world.TVShows, err = loadAll[model.TVShow](ctx, m.store, scope, docstore.ColSaveTVShows); err != nil {
		return nil, err
	}
	if world.Shows, err = loadAll[model.Show](ctx, m.store, scope, docstore.ColSaveShows); err != nil {
		return nil, err
	}
	if world.Teams, err = loadAll[model.Team](ctx, m.store, scope, docstore.ColSaveTeams); err != nil {
		return nil, err
	}
	if world.Stables, err = loadAll[model.Stable](ctx, m.store, scope, docstore.ColSaveStables); err != nil {
		return nil, err
	}
	if world.Sponsors, err = loadAll[model.Sponsor](ctx, m.store, scope, docstore.ColSaveSponsors); err != nil {
		return nil, err
	}
	if world.Relationships, err = loadAll[model.Relationship](ctx, m.store, scope, docstore.ColSaveRelationships); err != nil {
		return nil, err
	}
	if world.Storylines, err = loadAll[model.Storyline](ctx, m.store, scope, docstore.ColSaveStorylines); err != nil {
		return nil, err
	}
	if world.Messages, err = loadAll[model.Message](ctx, m.store, scope, docstore.ColSaveMessages); err != nil {
		return nil, err
	}
	if world.CareerEvents, err = loadAll[model.CareerEvent](ctx, m.store, scope, docstore.ColSaveCareerEvents); err != nil {
		return nil, err
	}

	sort.Slice(world.Shows, func(i, j int) bool { return world.Shows[i].Date.Before(world.Shows[j].Date) })
	sort.Slice(world.Messages, func(i, j int) bool { return world.Messages[i].Timestamp.Before(world.Messages[j].Timestamp) })
	sort.Slice(world.CareerEvents, func(i, j int) bool { return world.CareerEvents[i].Date.Before(world.CareerEvents[j].Date) })

	for _, msg := range world.Messages {
		if !msg.IsRead {
			world.UnreadMessages++
		}
	}

	return &Session{
		store: m.store,
		gen:   m.gen,
		cfg:   m.cfg,
		log:   m.log.With().Str("save_id", saveID).Logger(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		scope: scope,
		world: world,
	}, nil
}

func loadAll[T any](ctx context.Context, store docstore.Store, scope, collection string) ([]*T, error) {
	docs, err := store.List(ctx, scope, collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	out := make([]*T, 0, len(docs))
	for _, d := range docs {
		v := new(T)
		if err := docstore.Decode(d.Body, v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, d.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}
