package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
	"github.com/kayfabe/kayfabe-booker/internal/narrative"
	"github.com/kayfabe/kayfabe-booker/internal/sim"
)

// RunOutcome reports a completed show run. The show itself completing is
// authoritative; the ledger, world-sim and narrative legs are best-effort and
// record their failures here instead of failing the run.
type RunOutcome struct {
	Show         *model.Show `json:"show"`
	Rating       int         `json:"rating"`
	Recap        string      `json:"recap"`
	LedgerErr    error       `json:"-"`
	SimErr       error       `json:"-"`
	NarrativeErr error       `json:"-"`
}

// RunShow resolves a booked card: rates every segment, appends the career
// ledger, applies morale and heat deltas, generates a recap, and marks the
// show Complete in one write. A show runs exactly once; re-running a
// Complete show returns model.ErrConflict.
func (s *Session) RunShow(ctx context.Context, showID string, segments []*model.Segment) (*RunOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closed(); err != nil {
		return nil, err
	}

	if len(segments) > s.cfg.CardSize {
		return nil, fmt.Errorf("%w: card has %d slots, limit is %d", model.ErrValidation, len(segments), s.cfg.CardSize)
	}

	show := s.world.ShowByID(showID)
	if show == nil {
		return nil, fmt.Errorf("%w: show %s", model.ErrNotFound, showID)
	}
	if show.Status == model.ShowComplete {
		return nil, fmt.Errorf("%w: show %s already ran", model.ErrConflict, showID)
	}

	stats := s.world.StatsByWrestler()
	for _, seg := range segments {
		if seg == nil {
			continue
		}
		seg.Rating = sim.Rate(seg, stats)
	}
	overall := sim.OverallRating(segments)

	out := &RunOutcome{Rating: overall}

	// History first, then world effects. Both are best-effort: a failure is
	// logged and reported but never blocks the show from completing.
	if err := s.appendCareerEvents(ctx, show, segments, overall); err != nil {
		out.LedgerErr = err
		s.log.Error().Err(err).Str("show_id", showID).Msg("career ledger append failed")
	}
	if err := s.applyShowEffects(ctx, show, segments); err != nil {
		out.SimErr = err
		s.log.Error().Err(err).Str("show_id", showID).Msg("world simulation step failed")
	}

	recap := s.generateRecap(ctx, show, segments, overall, out)

	completed := *show
	completed.Status = model.ShowComplete
	completed.Segments = segments
	completed.Rating = overall
	completed.Recap = recap

	var batch docstore.Batch
	if err := batch.SetJSON(s.scope, docstore.ColSaveShows, show.ID, "", &completed); err != nil {
		return nil, err
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return nil, fmt.Errorf("persist show result: %w", err)
	}
	*show = completed

	out.Show = show
	out.Recap = recap
	return out, nil
}

// appendCareerEvents writes one ledger record per participant per rated
// segment, in a single batch. Records are never rewritten.
func (s *Session) appendCareerEvents(ctx context.Context, show *model.Show, segments []*model.Segment, overall int) error {
	company := s.world.CompanyByID(s.world.Save.PlayerCompanyID)
	companySize := "Unknown"
	if company != nil {
		companySize = company.Size
	}

	var batch docstore.Batch
	var events []*model.CareerEvent
	for _, seg := range segments {
		if seg == nil {
			continue
		}
		for _, p := range seg.Participants {
			ev := careerEvent(s.world.Save, show, seg, p, overall, companySize)
			if err := batch.SetJSON(s.scope, docstore.ColSaveCareerEvents, ev.ID, "", ev); err != nil {
				return err
			}
			events = append(events, ev)
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return err
	}
	s.world.CareerEvents = append(s.world.CareerEvents, events...)
	return nil
}

func careerEvent(save model.PlayerSave, show *model.Show, seg *model.Segment, p model.Participant, overall int, companySize string) *model.CareerEvent {
	var opponentIDs, opponentNames []string
	for _, q := range seg.Participants {
		if q.ID == p.ID {
			continue
		}
		opponentIDs = append(opponentIDs, q.ID)
		opponentNames = append(opponentNames, q.Name)
	}
	opponents := strings.Join(opponentNames, ", ")

	eventType := model.CareerAngle
	notes := fmt.Sprintf("Participated in an angle with %s", orDefault(opponents, "others"))
	if seg.Type == model.SegmentMatch {
		switch {
		case seg.WinnerID == p.ID:
			eventType = model.CareerMatchWin
			notes = fmt.Sprintf("Won match against %s", orDefault(opponents, "opponent(s)"))
		case seg.WinnerID != "":
			eventType = model.CareerMatchLoss
			winnerName := ""
			for _, q := range seg.Participants {
				if q.ID == seg.WinnerID {
					winnerName = q.Name
					break
				}
			}
			notes = fmt.Sprintf("Lost match to %s", orDefault(winnerName, "opponent(s)"))
		default:
			eventType = model.CareerMatchDraw
			notes = fmt.Sprintf("Match with %s ended in a draw/no contest.", orDefault(opponents, "opponent(s)"))
		}
	}

	rating := seg.Rating
	if rating == 0 {
		rating = overall
	}

	return &model.CareerEvent{
		ID:            uuid.New().String(),
		PlayerSaveID:  save.ID,
		WrestlerID:    p.ID,
		Date:          save.CurrentDate,
		EventType:     eventType,
		CompanyID:     save.PlayerCompanyID,
		CompanySize:   companySize,
		SegmentRating: rating,
		OpponentIDs:   opponentIDs,
		Notes:         notes,
		StorylineID:   seg.StorylineID,
		ShowID:        show.ID,
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// applyShowEffects computes morale and heat deltas for the card and commits
// the changed wrestler and storyline documents in one batch. No qualifying
// deltas means no write.
func (s *Session) applyShowEffects(ctx context.Context, show *model.Show, segments []*model.Segment) error {
	base := sim.Baseline{
		Morale:        make(map[string]int, len(s.world.Wrestlers)),
		Heat:          make(map[string]int, len(s.world.Storylines)),
		Relationships: s.world.Relationships,
	}
	for _, w := range s.world.Wrestlers {
		base.Morale[w.ID] = w.Morale
	}
	for _, story := range s.world.Storylines {
		base.Heat[story.ID] = story.Heat
	}

	eff := sim.ComputeShowEffects(segments, show.EventTier, base)
	if eff.Empty() {
		return nil
	}

	var batch docstore.Batch
	for _, w := range s.world.Wrestlers {
		morale, ok := eff.Morale[w.ID]
		if !ok {
			continue
		}
		updated := *w
		updated.Morale = morale
		if err := batch.SetJSON(s.scope, docstore.ColSaveWrestlers, w.ID, "", &updated); err != nil {
			return err
		}
	}
	for _, story := range s.world.Storylines {
		heat, ok := eff.Heat[story.ID]
		if !ok {
			continue
		}
		updated := *story
		updated.Heat = heat
		if err := batch.SetJSON(s.scope, docstore.ColSaveStorylines, story.ID, "", &updated); err != nil {
			return err
		}
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return err
	}
	for _, w := range s.world.Wrestlers {
		if morale, ok := eff.Morale[w.ID]; ok {
			w.Morale = morale
		}
	}
	for _, story := range s.world.Storylines {
		if heat, ok := eff.Heat[story.ID]; ok {
			story.Heat = heat
		}
	}
	return nil
}

// generateRecap asks the narrative service for a dirt-sheet writeup and
// falls back to a stock line on failure.
func (s *Session) generateRecap(ctx context.Context, show *model.Show, segments []*model.Segment, overall int, out *RunOutcome) string {
	system, user := narrative.RecapPrompts(show, segments, overall, func(id string) string {
		if story := s.world.StorylineByID(id); story != nil {
			return story.Name
		}
		return ""
	})
	recapCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()
	recap, err := s.gen.Generate(recapCtx, system, user)
	if err != nil {
		out.NarrativeErr = err
		s.log.Warn().Err(err).Str("show_id", show.ID).Msg("recap generation failed")
		return narrative.FallbackRecap
	}
	return recap
}
