package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kayfabe/kayfabe-booker/internal/config"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/model"
	"github.com/kayfabe/kayfabe-booker/internal/narrative"
)

// Session is one loaded game. It processes one top-level command at a time;
// the mutex is the "busy" state that blocks further input until the current
// command completes.
type Session struct {
	mu    sync.Mutex
	store docstore.Store
	gen   narrative.Generator
	cfg   *config.Config
	log   zerolog.Logger
	rng   *rand.Rand
	scope string
	world *model.WorldSnapshot
}

// Snapshot returns the current world state.
func (s *Session) Snapshot() *model.WorldSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world
}

// Exit drops the in-memory world. The session is unusable afterwards.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world = nil
}

func (s *Session) closed() error {
	if s.world == nil {
		return fmt.Errorf("%w: session closed", model.ErrConflict)
	}
	return nil
}

// AdvanceDay runs the daily random-event hook for the day that is ending,
// then moves currentDate forward by exactly one calendar day. This is the
// only place the date advances.
func (s *Session) AdvanceDay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closed(); err != nil {
		return err
	}

	if err := s.maybeDailyMessage(ctx); err != nil {
		// Flavor only. The day still ends.
		s.log.Warn().Err(err).Msg("daily message event failed")
	}

	save := s.world.Save
	save.CurrentDate = save.CurrentDate.AddDate(0, 0, 1)
	save.LastPlayed = time.Now().UTC()

	var batch docstore.Batch
	if err := batch.SetJSON(docstore.UserScope(save.UserID), docstore.ColPlayerSaves, save.ID, "", &save); err != nil {
		return err
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return fmt.Errorf("advance day: %w", err)
	}
	s.world.Save = save
	return nil
}

// maybeDailyMessage rolls the daily event chance and, on a hit, has a random
// wrestler text the booker about a random topic. A narrative failure falls
// back to a stock message body.
func (s *Session) maybeDailyMessage(ctx context.Context) error {
	if len(s.world.Wrestlers) == 0 || s.rng.Float64() >= s.cfg.EventChance {
		return nil
	}
	w := s.world.Wrestlers[s.rng.Intn(len(s.world.Wrestlers))]
	topic := narrative.MessageTopics[s.rng.Intn(len(narrative.MessageTopics))]

	system, user := narrative.WrestlerMessagePrompts(w, topic)
	body, err := s.gen.Generate(ctx, system, user)
	if err != nil {
		body = narrative.FallbackMessage
	}

	msg := &model.Message{
		ID:         uuid.New().String(),
		SenderID:   w.ID,
		SenderName: w.Name,
		Body:       body,
		Timestamp:  time.Now().UTC(),
		Type:       "Text",
		IsRead:     false,
	}
	var batch docstore.Batch
	if err := batch.SetJSON(s.scope, docstore.ColSaveMessages, msg.ID, "", msg); err != nil {
		return err
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return err
	}
	s.world.Messages = append(s.world.Messages, msg)
	s.world.UnreadMessages++
	return nil
}

// ShowToday returns the Planned show scheduled on currentDate's calendar
// day, or nil. Two Planned shows sharing a date is a template-authoring
// error; the first by card order wins.
func (s *Session) ShowToday() *model.Show {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return nil
	}
	y, m, d := s.world.Save.CurrentDate.Date()
	for _, show := range s.world.Shows {
		if show.Status != model.ShowPlanned {
			continue
		}
		sy, sm, sd := show.Date.Date()
		if sy == y && sm == m && sd == d {
			return show
		}
	}
	return nil
}

// MarkMessagesRead flips every unread message to read in one batch. No
// unread messages is a no-op.
func (s *Session) MarkMessagesRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closed(); err != nil {
		return err
	}

	var batch docstore.Batch
	var unread []*model.Message
	for _, msg := range s.world.Messages {
		if msg.IsRead {
			continue
		}
		updated := *msg
		updated.IsRead = true
		if err := batch.SetJSON(s.scope, docstore.ColSaveMessages, msg.ID, "", &updated); err != nil {
			return err
		}
		unread = append(unread, msg)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	for _, msg := range unread {
		msg.IsRead = true
	}
	s.world.UnreadMessages = 0
	return nil
}

// CreateStoryline starts an Active storyline between at least two performers
// with a little starting heat.
func (s *Session) CreateStoryline(ctx context.Context, name string, participants []model.Participant) (*model.Storyline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closed(); err != nil {
		return nil, err
	}
	if name == "" || len(participants) < 2 {
		return nil, fmt.Errorf("%w: a storyline needs a name and at least 2 participants", model.ErrValidation)
	}

	story := &model.Storyline{
		ID:           uuid.New().String(),
		Name:         name,
		Participants: participants,
		CompanyID:    s.world.Save.PlayerCompanyID,
		Heat:         10,
		Status:       model.StorylineActive,
		Beats:        []string{},
	}
	var batch docstore.Batch
	if err := batch.SetJSON(s.scope, docstore.ColSaveStorylines, story.ID, "", story); err != nil {
		return nil, err
	}
	if err := s.store.Apply(ctx, &batch); err != nil {
		return nil, fmt.Errorf("create storyline: %w", err)
	}
	s.world.Storylines = append(s.world.Storylines, story)
	return story, nil
}

// Advice asks the creative assistant a question with the current roster as
// context. Narrative failures degrade to a stock reply; state never changes.
func (s *Session) Advice(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closed(); err != nil {
		return "", err
	}
	if question == "" {
		return "", fmt.Errorf("%w: question must not be empty", model.ErrValidation)
	}
	system, user := narrative.AdvicePrompts(s.world.Wrestlers, question)
	answer, err := s.gen.Generate(ctx, system, user)
	if err != nil {
		s.log.Warn().Err(err).Msg("advice generation failed")
		return narrative.FallbackAdvice, nil
	}
	return answer, nil
}

// CareerHistory returns a wrestler's ledger entries, oldest first.
func (s *Session) CareerHistory(wrestlerID string) []*model.CareerEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return nil
	}
	var out []*model.CareerEvent
	for _, ev := range s.world.CareerEvents {
		if ev.WrestlerID == wrestlerID {
			out = append(out, ev)
		}
	}
	return out
}
