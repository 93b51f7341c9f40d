package booking

import (
	"errors"
	"testing"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

func TestFormDuplicateParticipantRejected(t *testing.T) {
	f := NewSegmentForm()
	if err := f.AddParticipant(model.Participant{ID: "a", Name: "Ace"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := f.AddParticipant(model.Participant{ID: "a", Name: "Ace"})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("duplicate add: got %v, want validation error", err)
	}
	if len(f.Participants) != 1 {
		t.Fatalf("participants = %d, want 1", len(f.Participants))
	}
}

func TestFormSwitchingToAngleClearsWinner(t *testing.T) {
	f := NewSegmentForm()
	_ = f.AddParticipant(model.Participant{ID: "a"})
	_ = f.AddParticipant(model.Participant{ID: "b"})
	if err := f.SetWinner("a"); err != nil {
		t.Fatalf("set winner: %v", err)
	}
	if err := f.SetType(model.SegmentAngle); err != nil {
		t.Fatalf("set type: %v", err)
	}
	if f.WinnerID != "" {
		t.Fatalf("winner survived type switch: %q", f.WinnerID)
	}
	if err := f.SetWinner("a"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("winner on angle: got %v, want validation error", err)
	}
}

func TestFormRemovingWinnerClearsWinner(t *testing.T) {
	f := NewSegmentForm()
	_ = f.AddParticipant(model.Participant{ID: "a"})
	_ = f.AddParticipant(model.Participant{ID: "b"})
	_ = f.SetWinner("b")
	f.RemoveParticipant("b")
	if f.WinnerID != "" {
		t.Fatalf("winner survived removal: %q", f.WinnerID)
	}
	if len(f.Participants) != 1 || f.Participants[0].ID != "a" {
		t.Fatalf("participants after removal: %+v", f.Participants)
	}
}

func TestFormWinnerMustBeParticipant(t *testing.T) {
	f := NewSegmentForm()
	_ = f.AddParticipant(model.Participant{ID: "a"})
	if err := f.SetWinner("outsider"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestCardCommitByIndex(t *testing.T) {
	c := NewCard(3)
	f := NewSegmentForm()
	_ = f.AddParticipant(model.Participant{ID: "a"})
	_ = f.AddParticipant(model.Participant{ID: "b"})
	_ = f.SetWinner("a")
	if err := c.Commit(1, f); err != nil {
		t.Fatalf("commit: %v", err)
	}

	segs := c.Segments()
	if segs[0] != nil || segs[2] != nil {
		t.Fatalf("untouched slots booked: %+v", segs)
	}
	if segs[1] == nil || segs[1].WinnerID != "a" {
		t.Fatalf("slot 1 = %+v", segs[1])
	}

	// Re-opening the slot preloads the saved state.
	reopened, err := c.Form(1)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if reopened.WinnerID != "a" || len(reopened.Participants) != 2 {
		t.Fatalf("reopened form = %+v", reopened)
	}
}

func TestCardCommitValidatesSlotInvariants(t *testing.T) {
	c := NewCard(2)
	if err := c.Commit(5, NewSegmentForm()); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("out-of-range commit: %v", err)
	}
	bad := SegmentForm{Type: "Promo"}
	if err := c.Commit(0, bad); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("bad type commit: %v", err)
	}
	// An angle form carrying a stale winner is normalized, not rejected.
	angle := SegmentForm{
		Type:         model.SegmentAngle,
		Participants: []model.Participant{{ID: "a"}},
		WinnerID:     "a",
	}
	if err := c.Commit(0, angle); err != nil {
		t.Fatalf("angle commit: %v", err)
	}
	if got := c.Segments()[0].WinnerID; got != "" {
		t.Fatalf("angle kept winner %q", got)
	}
}

func TestCardClear(t *testing.T) {
	c := NewCard(2)
	f := NewSegmentForm()
	_ = f.AddParticipant(model.Participant{ID: "a"})
	_ = c.Commit(0, f)
	if err := c.Clear(0); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if c.Segments()[0] != nil {
		t.Fatal("slot not cleared")
	}
}
