// Package worldgen instantiates a fresh, fully self-consistent save world
// from a read-only template dataset.
//
// Template identities must never leak into save state: multiple players can
// instantiate independent worlds from the same template concurrently, and
// reusing template identifiers would alias unrelated saves. Every copied
// entity gets a freshly generated id, and every cross-reference is rewritten
// through the identity map.
package worldgen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// Show-day anchors: the first event of the year lands on day 7, the rest on
// day 28, always at 18:00.
const (
	firstMonthDay = 7
	laterMonthDay = 28
	showHour      = 18
)

// Options tune instantiation.
type Options struct {
	// BaseYear anchors the in-game calendar.
	BaseYear int
}

// Instantiate copies the dataset into a brand-new save owned by userID and
// returns the resulting PlayerSave. A dataset with no matching template
// entities yields a near-empty save, which is acceptable; a failed batch
// commit propagates and leaves no partial save content visible.
func Instantiate(ctx context.Context, store docstore.Store, userID, datasetID, saveName string, opts Options) (*model.PlayerSave, error) {
	if opts.BaseYear == 0 {
		opts.BaseYear = 2025
	}

	save := &model.PlayerSave{
		ID:          uuid.New().String(),
		UserID:      userID,
		DatasetID:   datasetID,
		SaveName:    saveName,
		LastPlayed:  time.Now().UTC(),
		CurrentDate: time.Date(opts.BaseYear, time.January, firstMonthDay, 9, 0, 0, 0, time.UTC),
	}
	if save.SaveName == "" {
		save.SaveName = fmt.Sprintf("New Game (%s)", save.LastPlayed.Format("2006-01-02"))
	}

	var saveBatch docstore.Batch
	if err := saveBatch.SetJSON(docstore.UserScope(userID), docstore.ColPlayerSaves, save.ID, "", save); err != nil {
		return nil, err
	}
	if err := store.Apply(ctx, &saveBatch); err != nil {
		return nil, fmt.Errorf("create player save: %w", err)
	}

	scope := docstore.SaveScope(userID, save.ID)
	idmap := IdentityMap{}
	var batch docstore.Batch
	playerCompanyID := ""

	// Pass 1: identity-bearing collections. Processed in dependency order so
	// member lists (teams, stables reference wrestlers) can be rewritten as
	// they are copied.
	companies, err := copyCompanies(ctx, store, &batch, scope, datasetID, idmap)
	if err != nil {
		return nil, err
	}
	if len(companies) > 0 {
		playerCompanyID = companies[0]
	}
	if err := copyWrestlers(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyStaff(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyTeams(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyStables(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}

	// Pass 2: dependent collections, foreign keys rewritten through the map.
	if err := copyTitles(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyTVDeals(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyTVShows(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copySponsors(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyRelationships(ctx, store, &batch, scope, datasetID, idmap); err != nil {
		return nil, err
	}
	if err := copyEventsAsShows(ctx, store, &batch, scope, datasetID, idmap, opts.BaseYear); err != nil {
		return nil, err
	}

	// One atomic commit: a partial failure never leaves a half-populated
	// save visible to the player.
	if err := store.Apply(ctx, &batch); err != nil {
		return nil, fmt.Errorf("populate save world: %w", err)
	}

	save.PlayerCompanyID = playerCompanyID
	var update docstore.Batch
	if err := update.SetJSON(docstore.UserScope(userID), docstore.ColPlayerSaves, save.ID, "", save); err != nil {
		return nil, err
	}
	if err := store.Apply(ctx, &update); err != nil {
		return nil, fmt.Errorf("assign player company: %w", err)
	}
	return save, nil
}

func copyCompanies(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) ([]string, error) {
	docs, err := store.ListByDataset(ctx, docstore.ColCompanies, datasetID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, d := range docs {
		var c model.Company
		if err := docstore.Decode(d.Body, &c); err != nil {
			return nil, err
		}
		c.ID = uuid.New().String()
		idmap[d.ID] = c.ID
		ids = append(ids, c.ID)
		if err := batch.SetJSON(scope, docstore.ColSaveCompanies, c.ID, "", &c); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func copyWrestlers(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColWrestlers, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var w model.Wrestler
		if err := docstore.Decode(d.Body, &w); err != nil {
			return err
		}
		w.ID = uuid.New().String()
		idmap[d.ID] = w.ID
		if err := batch.SetJSON(scope, docstore.ColSaveWrestlers, w.ID, "", &w); err != nil {
			return err
		}
	}
	return nil
}

func copyStaff(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColStaff, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var s model.Staff
		if err := docstore.Decode(d.Body, &s); err != nil {
			return err
		}
		s.ID = uuid.New().String()
		idmap[d.ID] = s.ID
		s.CompanyID = idmap.Lookup(s.CompanyID)
		if err := batch.SetJSON(scope, docstore.ColSaveStaff, s.ID, "", &s); err != nil {
			return err
		}
	}
	return nil
}

func copyTeams(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColTeams, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var t model.Team
		if err := docstore.Decode(d.Body, &t); err != nil {
			return err
		}
		t.ID = uuid.New().String()
		idmap[d.ID] = t.ID
		t.MemberIDs = idmap.LookupAll(t.MemberIDs)
		if err := batch.SetJSON(scope, docstore.ColSaveTeams, t.ID, "", &t); err != nil {
			return err
		}
	}
	return nil
}

func copyStables(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColStables, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var s model.Stable
		if err := docstore.Decode(d.Body, &s); err != nil {
			return err
		}
		s.ID = uuid.New().String()
		idmap[d.ID] = s.ID
		s.LeaderID = idmap.Lookup(s.LeaderID)
		s.MemberIDs = idmap.LookupAll(s.MemberIDs)
		if err := batch.SetJSON(scope, docstore.ColSaveStables, s.ID, "", &s); err != nil {
			return err
		}
	}
	return nil
}

func copyTitles(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColTitles, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var t model.Title
		if err := docstore.Decode(d.Body, &t); err != nil {
			return err
		}
		t.ID = uuid.New().String()
		t.CompanyID = idmap.Lookup(t.CompanyID)
		t.InitialHolderID = idmap.Lookup(t.InitialHolderID)
		if err := batch.SetJSON(scope, docstore.ColSaveTitles, t.ID, "", &t); err != nil {
			return err
		}
	}
	return nil
}

func copyTVDeals(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColTVDeals, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var t model.TVDeal
		if err := docstore.Decode(d.Body, &t); err != nil {
			return err
		}
		t.ID = uuid.New().String()
		t.CompanyID = idmap.Lookup(t.CompanyID)
		if err := batch.SetJSON(scope, docstore.ColSaveTVDeals, t.ID, "", &t); err != nil {
			return err
		}
	}
	return nil
}

func copyTVShows(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColTVShows, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var t model.TVShow
		if err := docstore.Decode(d.Body, &t); err != nil {
			return err
		}
		t.ID = uuid.New().String()
		t.CompanyID = idmap.Lookup(t.CompanyID)
		if err := batch.SetJSON(scope, docstore.ColSaveTVShows, t.ID, "", &t); err != nil {
			return err
		}
	}
	return nil
}

func copySponsors(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColSponsors, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var s model.Sponsor
		if err := docstore.Decode(d.Body, &s); err != nil {
			return err
		}
		s.ID = uuid.New().String()
		if err := batch.SetJSON(scope, docstore.ColSaveSponsors, s.ID, "", &s); err != nil {
			return err
		}
	}
	return nil
}

func copyRelationships(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap) error {
	docs, err := store.ListByDataset(ctx, docstore.ColRelationships, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var r model.Relationship
		if err := docstore.Decode(d.Body, &r); err != nil {
			return err
		}
		r.ID = uuid.New().String()
		r.PersonAID = idmap.Lookup(r.PersonAID)
		r.PersonBID = idmap.Lookup(r.PersonBID)
		if err := batch.SetJSON(scope, docstore.ColSaveRelationships, r.ID, "", &r); err != nil {
			return err
		}
	}
	return nil
}

// copyEventsAsShows transforms calendar events into Planned shows with a
// concrete date.
func copyEventsAsShows(ctx context.Context, store docstore.Store, batch *docstore.Batch, scope, datasetID string, idmap IdentityMap, baseYear int) error {
	docs, err := store.ListByDataset(ctx, docstore.ColEvents, datasetID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		var ev model.CalendarEvent
		if err := docstore.Decode(d.Body, &ev); err != nil {
			return err
		}
		show := model.Show{
			ID:        uuid.New().String(),
			CompanyID: idmap.Lookup(ev.CompanyID),
			Month:     ev.Month,
			EventName: ev.EventName,
			EventTier: ev.EventTier,
			Status:    model.ShowPlanned,
			Date:      ShowDate(baseYear, ev.Month),
		}
		if err := batch.SetJSON(scope, docstore.ColSaveShows, show.ID, "", &show); err != nil {
			return err
		}
	}
	return nil
}

// ShowDate computes the concrete date for a calendar event: the first month
// anchors to day 7, all others to day 28, at 18:00 of the base year.
func ShowDate(baseYear, month int) time.Time {
	day := laterMonthDay
	if month == 1 {
		day = firstMonthDay
	}
	return time.Date(baseYear, time.Month(month), day, showHour, 0, 0, 0, time.UTC)
}
