package model

// WorldSnapshot is the fully loaded in-memory state of one save. It is
// exclusively owned by the active session (single writer); every persisted
// mutation is mirrored here so the caller never re-reads the store to see its
// own writes.
type WorldSnapshot struct {
	Save          PlayerSave      `json:"save"`
	Companies     []*Company      `json:"companies"`
	Wrestlers     []*Wrestler     `json:"wrestlers"`
	Staff         []*Staff        `json:"staff"`
	Titles        []*Title        `json:"titles"`
	TVDeals       []*TVDeal       `json:"tvDeals"`
	TVShows       []*TVShow       `json:"tvShows"`
	Shows         []*Show         `json:"shows"`
	Teams         []*Team         `json:"teams"`
	Stables       []*Stable       `json:"stables"`
	Sponsors      []*Sponsor      `json:"sponsors"`
	Relationships []*Relationship `json:"relationships"`
	Storylines    []*Storyline    `json:"storylines"`
	Messages      []*Message      `json:"messages"`
	CareerEvents  []*CareerEvent  `json:"careerEvents"`

	UnreadMessages int `json:"unreadMessages"`
}

// WrestlerByID returns the roster entry for id, or nil.
func (w *WorldSnapshot) WrestlerByID(id string) *Wrestler {
	for _, wr := range w.Wrestlers {
		if wr.ID == id {
			return wr
		}
	}
	return nil
}

// CompanyByID returns the company for id, or nil.
func (w *WorldSnapshot) CompanyByID(id string) *Company {
	for _, c := range w.Companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ShowByID returns the show for id, or nil.
func (w *WorldSnapshot) ShowByID(id string) *Show {
	for _, s := range w.Shows {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// StorylineByID returns the storyline for id, or nil.
func (w *WorldSnapshot) StorylineByID(id string) *Storyline {
	for _, s := range w.Storylines {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// StatsByWrestler builds the roster-stats lookup consumed by the rating
// engine.
func (w *WorldSnapshot) StatsByWrestler() map[string]Stats {
	out := make(map[string]Stats, len(w.Wrestlers))
	for _, wr := range w.Wrestlers {
		out[wr.ID] = wr.Stats
	}
	return out
}
