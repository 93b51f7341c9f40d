// Package booking holds the in-memory editing buffer for one show's card.
// Nothing here persists; the card is handed to the show pipeline on "run
// show" and discarded on cancel.
package booking

import (
	"fmt"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// DefaultCardSize is the number of slots on a standard card.
const DefaultCardSize = 10

// SegmentForm is the isolated editing state for one slot. It is committed
// back into the card by index, never by identity, since slots are positional.
type SegmentForm struct {
	Type         string
	Participants []model.Participant
	WinnerID     string
	StorylineID  string
}

// NewSegmentForm returns the default form state for an empty slot.
func NewSegmentForm() SegmentForm {
	return SegmentForm{Type: model.SegmentMatch}
}

// SetType switches the segment type. Switching to Angle clears any selected
// winner, since an angle never has one.
func (f *SegmentForm) SetType(typ string) error {
	switch typ {
	case model.SegmentMatch, model.SegmentAngle:
	default:
		return fmt.Errorf("%w: unknown segment type %q", model.ErrValidation, typ)
	}
	f.Type = typ
	if typ == model.SegmentAngle {
		f.WinnerID = ""
	}
	return nil
}

// AddParticipant appends a wrestler. A participant cannot be added twice to
// the same segment.
func (f *SegmentForm) AddParticipant(p model.Participant) error {
	for _, existing := range f.Participants {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: %s is already in this segment", model.ErrValidation, p.Name)
		}
	}
	f.Participants = append(f.Participants, p)
	return nil
}

// RemoveParticipant drops a wrestler; if they were the declared winner the
// winner is cleared.
func (f *SegmentForm) RemoveParticipant(id string) {
	kept := f.Participants[:0]
	for _, p := range f.Participants {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.Participants = kept
	if f.WinnerID == id {
		f.WinnerID = ""
	}
}

// SetWinner declares the match winner. Only matches have winners, and the
// winner must be on the card.
func (f *SegmentForm) SetWinner(id string) error {
	if id == "" {
		f.WinnerID = ""
		return nil
	}
	if f.Type != model.SegmentMatch {
		return fmt.Errorf("%w: only a match can have a winner", model.ErrValidation)
	}
	for _, p := range f.Participants {
		if p.ID == id {
			f.WinnerID = id
			return nil
		}
	}
	return fmt.Errorf("%w: winner must be a participant", model.ErrValidation)
}

// segment converts the form into the persisted segment shape.
func (f SegmentForm) segment() *model.Segment {
	return &model.Segment{
		Type:         f.Type,
		Participants: f.Participants,
		WinnerID:     f.WinnerID,
		StorylineID:  f.StorylineID,
	}
}

// Card is a fixed-length ordered list of slots for one show.
type Card struct {
	slots []*model.Segment
}

// NewCard creates a card of size empty slots.
func NewCard(size int) *Card {
	if size < 1 {
		size = DefaultCardSize
	}
	return &Card{slots: make([]*model.Segment, size)}
}

// Size returns the slot count.
func (c *Card) Size() int { return len(c.slots) }

// Form returns an editing form for a slot, preloaded from its current
// contents when the slot is already booked.
func (c *Card) Form(index int) (SegmentForm, error) {
	if index < 0 || index >= len(c.slots) {
		return SegmentForm{}, fmt.Errorf("%w: slot %d out of range", model.ErrValidation, index)
	}
	seg := c.slots[index]
	if seg == nil {
		return NewSegmentForm(), nil
	}
	return SegmentForm{
		Type:         seg.Type,
		Participants: append([]model.Participant(nil), seg.Participants...),
		WinnerID:     seg.WinnerID,
		StorylineID:  seg.StorylineID,
	}, nil
}

// Commit writes a form back into its slot by index, re-validating the slot
// invariants.
func (c *Card) Commit(index int, f SegmentForm) error {
	if index < 0 || index >= len(c.slots) {
		return fmt.Errorf("%w: slot %d out of range", model.ErrValidation, index)
	}
	if f.Type != model.SegmentMatch && f.Type != model.SegmentAngle {
		return fmt.Errorf("%w: unknown segment type %q", model.ErrValidation, f.Type)
	}
	seen := make(map[string]bool, len(f.Participants))
	for _, p := range f.Participants {
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate participant %s", model.ErrValidation, p.Name)
		}
		seen[p.ID] = true
	}
	if f.Type == model.SegmentAngle {
		f.WinnerID = ""
	}
	if f.WinnerID != "" && !seen[f.WinnerID] {
		return fmt.Errorf("%w: winner must be a participant", model.ErrValidation)
	}
	c.slots[index] = f.segment()
	return nil
}

// Clear empties a slot.
func (c *Card) Clear(index int) error {
	if index < 0 || index >= len(c.slots) {
		return fmt.Errorf("%w: slot %d out of range", model.ErrValidation, index)
	}
	c.slots[index] = nil
	return nil
}

// Segments returns the positional segment list, nil entries included, for
// the show pipeline.
func (c *Card) Segments() []*model.Segment {
	out := make([]*model.Segment, len(c.slots))
	copy(out, c.slots)
	return out
}
