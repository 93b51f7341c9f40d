package sim

import (
	"testing"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

func roster() map[string]model.Stats {
	return map[string]model.Stats{
		"ace":  {Brawling: 80, Speed: 75, Technical: 85, Charisma: 90},
		"jax":  {Brawling: 95, Speed: 60, Technical: 65, Charisma: 70},
		"mia":  {Brawling: 65, Speed: 85, Technical: 80, Charisma: 90},
		"maxi": {Brawling: 100, Speed: 100, Technical: 100, Charisma: 100},
	}
}

func TestRateAngleUsesOnlyCharisma(t *testing.T) {
	stats := roster()
	seg := &model.Segment{
		Type:         model.SegmentAngle,
		Participants: []model.Participant{{ID: "ace"}, {ID: "jax"}},
	}
	// avg charisma (90+70)/2 = 80
	if got := Rate(seg, stats); got != 80 {
		t.Fatalf("angle rating = %d, want 80", got)
	}

	// In-ring stats must not matter for angles.
	zeroWork := map[string]model.Stats{
		"ace": {Charisma: 90},
		"jax": {Charisma: 70},
	}
	if got := Rate(seg, zeroWork); got != 80 {
		t.Fatalf("angle rating with zero workrate = %d, want 80", got)
	}
}

func TestRateMatchBlendsCharismaAndWorkrate(t *testing.T) {
	stats := roster()
	seg := &model.Segment{
		Type:         model.SegmentMatch,
		Participants: []model.Participant{{ID: "ace"}, {ID: "jax"}},
	}
	// charisma avg 80; workrates 80 and 73.33 -> avg 76.66
	// 0.6*80 + 0.4*76.66 = 78.66 -> floor 78
	if got := Rate(seg, stats); got != 78 {
		t.Fatalf("match rating = %d, want 78", got)
	}
}

func TestRateCapsAt100(t *testing.T) {
	stats := roster()
	seg := &model.Segment{
		Type:         model.SegmentMatch,
		Participants: []model.Participant{{ID: "maxi"}},
	}
	if got := Rate(seg, stats); got != 100 {
		t.Fatalf("rating = %d, want 100", got)
	}
}

func TestRateSkipsUnresolvedParticipants(t *testing.T) {
	stats := roster()
	seg := &model.Segment{
		Type:         model.SegmentAngle,
		Participants: []model.Participant{{ID: "ace"}, {ID: "ghost"}},
	}
	// Only ace resolves: avg charisma 90.
	if got := Rate(seg, stats); got != 90 {
		t.Fatalf("rating = %d, want 90", got)
	}
}

func TestRateZeroResolvableParticipants(t *testing.T) {
	seg := &model.Segment{
		Type:         model.SegmentMatch,
		Participants: []model.Participant{{ID: "ghost"}},
	}
	if got := Rate(seg, roster()); got != 0 {
		t.Fatalf("rating = %d, want 0", got)
	}
	if got := Rate(&model.Segment{Type: model.SegmentAngle}, roster()); got != 0 {
		t.Fatalf("empty segment rating = %d, want 0", got)
	}
	if got := Rate(nil, roster()); got != 0 {
		t.Fatalf("nil segment rating = %d, want 0", got)
	}
}

func TestRateUnknownTypeIsZero(t *testing.T) {
	seg := &model.Segment{
		Type:         "Promo",
		Participants: []model.Participant{{ID: "ace"}},
	}
	if got := Rate(seg, roster()); got != 0 {
		t.Fatalf("rating = %d, want 0", got)
	}
}

func TestRateAlwaysInRange(t *testing.T) {
	stats := roster()
	types := []string{model.SegmentMatch, model.SegmentAngle, "Other"}
	ids := []string{"ace", "jax", "mia", "maxi", "ghost"}
	for _, typ := range types {
		for _, a := range ids {
			for _, b := range ids {
				seg := &model.Segment{
					Type:         typ,
					Participants: []model.Participant{{ID: a}, {ID: b}},
				}
				got := Rate(seg, stats)
				if got < 0 || got > 100 {
					t.Fatalf("Rate(%s, %s vs %s) = %d, out of [0,100]", typ, a, b, got)
				}
			}
		}
	}
}
