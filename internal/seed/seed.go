// Package seed installs the built-in "Default Fiction" template dataset: one
// national promotion, a ten-wrestler roster, two titles, a weekly TV show,
// the twelve-event yearly calendar, and two starting relationships.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// DefaultDatasetID identifies the built-in dataset.
const DefaultDatasetID = "default-fiction"

// EnsureDefaultDataset seeds the default dataset if it does not already
// exist. Idempotent: an existing dataset short-circuits without writes.
// Reports whether it seeded anything.
func EnsureDefaultDataset(ctx context.Context, store docstore.Store) (bool, error) {
	_, err := store.Get(ctx, "", docstore.ColDatasets, DefaultDatasetID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, fmt.Errorf("check default dataset: %w", err)
	}

	var batch docstore.Batch
	if err := batch.SetJSON("", docstore.ColDatasets, DefaultDatasetID, "", &model.Dataset{
		ID:          DefaultDatasetID,
		Name:        "Default Fiction",
		Description: "A balanced, fictional universe to start your booking career.",
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return false, err
	}

	companyID := uuid.New().String()
	if err := batch.SetJSON("", docstore.ColCompanies, companyID, DefaultDatasetID, &model.Company{
		ID:          companyID,
		DatasetID:   DefaultDatasetID,
		Name:        "Federation X",
		Prestige:    60,
		Finances:    5000000,
		PublicImage: 50,
		RiskLevel:   50,
		Size:        "National",
	}); err != nil {
		return false, err
	}

	wrestlerIDs := map[string]string{}
	for _, w := range defaultRoster() {
		w.ID = uuid.New().String()
		w.DatasetID = DefaultDatasetID
		wrestlerIDs[w.Name] = w.ID
		if err := batch.SetJSON("", docstore.ColWrestlers, w.ID, DefaultDatasetID, &w); err != nil {
			return false, err
		}
	}

	titles := []model.Title{
		{TitleName: "FX World Championship", Prestige: 80},
		{TitleName: "FX Women's Championship", Prestige: 70},
	}
	for _, t := range titles {
		t.ID = uuid.New().String()
		t.DatasetID = DefaultDatasetID
		t.CompanyID = companyID
		if err := batch.SetJSON("", docstore.ColTitles, t.ID, DefaultDatasetID, &t); err != nil {
			return false, err
		}
	}

	tvShowID := uuid.New().String()
	if err := batch.SetJSON("", docstore.ColTVShows, tvShowID, DefaultDatasetID, &model.TVShow{
		ID:        tvShowID,
		DatasetID: DefaultDatasetID,
		CompanyID: companyID,
		ShowName:  "FX Voltage",
		DayOfWeek: "Monday",
	}); err != nil {
		return false, err
	}

	for _, ev := range defaultCalendar() {
		ev.ID = uuid.New().String()
		ev.DatasetID = DefaultDatasetID
		ev.CompanyID = companyID
		if err := batch.SetJSON("", docstore.ColEvents, ev.ID, DefaultDatasetID, &ev); err != nil {
			return false, err
		}
	}

	relationships := []model.Relationship{
		{
			PersonAID:        wrestlerIDs["Alex 'The Ace' Valour"],
			PersonBID:        wrestlerIDs["Jax 'The Juggernaut' Stone"],
			RelationshipType: "Rivalry",
			Status:           "Strongly Dislike",
			Notes:            "Real-life rivalry from their training days.",
		},
		{
			PersonAID:        wrestlerIDs["Leo 'Lionheart' Cruz"],
			PersonBID:        wrestlerIDs["Eliza 'High-Flyer' Hayes"],
			RelationshipType: "Friendship",
			Status:           "Friends",
			Notes:            "Came up on the indies together.",
		},
	}
	for _, r := range relationships {
		r.ID = uuid.New().String()
		r.DatasetID = DefaultDatasetID
		if err := batch.SetJSON("", docstore.ColRelationships, r.ID, DefaultDatasetID, &r); err != nil {
			return false, err
		}
	}

	if err := store.Apply(ctx, &batch); err != nil {
		return false, fmt.Errorf("seed default dataset: %w", err)
	}
	return true, nil
}

func defaultRoster() []model.Wrestler {
	return []model.Wrestler{
		{Name: "Alex 'The Ace' Valour", Stats: model.Stats{Brawling: 80, Speed: 75, Technical: 85, Charisma: 90}, Disposition: "Face", Gimmick: "Franchise Player", AlternateNames: []string{"The Golden Boy"}, Morale: 75},
		{Name: "Jax 'The Juggernaut' Stone", Stats: model.Stats{Brawling: 95, Speed: 60, Technical: 65, Charisma: 70}, Disposition: "Heel", Gimmick: "Monster", Morale: 75},
		{Name: "Kenji 'Codebreak' Tanaka", Stats: model.Stats{Brawling: 70, Speed: 90, Technical: 95, Charisma: 80}, Disposition: "Face", Gimmick: "Show Stealer", Morale: 75},
		{Name: "Mia 'Showtime' Evans", Stats: model.Stats{Brawling: 65, Speed: 85, Technical: 80, Charisma: 90}, Disposition: "Face", Gimmick: "Teen Idol", Morale: 75},
		{Name: "Victoria 'The Queen' Black", Stats: model.Stats{Brawling: 75, Speed: 70, Technical: 85, Charisma: 95}, Disposition: "Heel", Gimmick: "Rich Snob", AlternateNames: []string{"Vicky Black"}, Morale: 75},
		{Name: "Leo 'Lionheart' Cruz", Stats: model.Stats{Brawling: 85, Speed: 80, Technical: 75, Charisma: 85}, Disposition: "Face", Gimmick: "Hero", Morale: 75},
		{Name: "Silas 'The Serpent' Retch", Stats: model.Stats{Brawling: 80, Speed: 70, Technical: 80, Charisma: 85}, Disposition: "Heel", Gimmick: "Evil", Morale: 75},
		{Name: "Eliza 'High-Flyer' Hayes", Stats: model.Stats{Brawling: 50, Speed: 95, Technical: 80, Charisma: 75}, Disposition: "Face", Gimmick: "Daredevil", Morale: 75},
		{Name: "Goliath", Stats: model.Stats{Brawling: 90, Speed: 50, Technical: 50, Charisma: 60}, Disposition: "Heel", Gimmick: "Monster", Morale: 75},
		{Name: "Johnny Spade", Stats: model.Stats{Brawling: 70, Speed: 70, Technical: 70, Charisma: 70}, Disposition: "Tweener", Gimmick: "No Gimmick Needed", Morale: 75},
	}
}

func defaultCalendar() []model.CalendarEvent {
	months := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	events := make([]model.CalendarEvent, 0, len(months))
	for i, m := range months {
		ev := model.CalendarEvent{
			Month:     i + 1,
			EventName: fmt.Sprintf("%s Mayhem", m),
			EventTier: model.TierMonthly,
		}
		switch i {
		case 3:
			ev.EventName, ev.EventTier = "Spring Stampede", model.TierMajor
		case 7:
			ev.EventName, ev.EventTier = "Summer Scorcher", model.TierMajor
		case 11:
			ev.EventName, ev.EventTier = "Final Conflict", model.TierFlagship
		}
		events = append(events, ev)
	}
	return events
}
