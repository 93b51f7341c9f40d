package sim

import (
	"math"
	"strings"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// Morale contributions.
const (
	storylineWinMorale  = 10
	storylineLossMorale = -5
	friendMorale        = 3
	rivalMorale         = -3
)

// TierMultiplier scales morale deltas by show prestige.
func TierMultiplier(tier string) float64 {
	switch {
	case strings.Contains(tier, "Flagship"):
		return 2.0
	case strings.Contains(tier, "Major"):
		return 1.5
	default:
		return 1.0
	}
}

// HeatDelta maps a segment rating to a storyline heat change.
func HeatDelta(rating int) int {
	switch {
	case rating >= 75:
		return 5
	case rating >= 50:
		return 2
	default:
		return -3
	}
}

// Baseline is the pre-show world state the effects computation starts from.
type Baseline struct {
	Morale        map[string]int // wrestler id -> morale
	Heat          map[string]int // storyline id -> heat
	Relationships []*model.Relationship
}

// Effects holds the post-show values for every wrestler and storyline whose
// value actually changed. Empty maps mean no write is needed.
type Effects struct {
	Morale map[string]int
	Heat   map[string]int
}

// Empty reports whether the show produced no deltas at all.
func (e Effects) Empty() bool {
	return len(e.Morale) == 0 && len(e.Heat) == 0
}

// ComputeShowEffects translates a completed show's rated segments into final
// morale and heat values.
//
// Accumulation is strictly sequential in card order: later segments see the
// updates of earlier ones, so a wrestler booked twice accumulates both
// deltas against the running value, each application clamped to [0,100].
// Only entries whose final value differs from the baseline are returned.
func ComputeShowEffects(segments []*model.Segment, tier string, base Baseline) Effects {
	mult := TierMultiplier(tier)
	rels := relationshipIndex(base.Relationships)

	morale := make(map[string]int, len(base.Morale))
	for id, v := range base.Morale {
		morale[id] = v
	}
	heat := make(map[string]int, len(base.Heat))
	for id, v := range base.Heat {
		heat[id] = v
	}

	for _, seg := range segments {
		if seg == nil {
			continue
		}
		if seg.Type != model.SegmentMatch && seg.Type != model.SegmentAngle {
			continue
		}

		if seg.StorylineID != "" {
			if old, ok := heat[seg.StorylineID]; ok {
				heat[seg.StorylineID] = model.ClampScale(old + HeatDelta(seg.Rating))
			}
		}

		if seg.Type != model.SegmentMatch {
			continue
		}
		for _, p := range seg.Participants {
			old, ok := morale[p.ID]
			if !ok {
				continue
			}
			delta := 0
			if seg.StorylineID != "" && seg.WinnerID != "" {
				if seg.WinnerID == p.ID {
					delta += storylineWinMorale
				} else {
					delta += storylineLossMorale
				}
			}
			for _, q := range seg.Participants {
				if q.ID == p.ID {
					continue
				}
				switch status := rels.status(p.ID, q.ID); {
				case strings.Contains(status, "Friend"):
					delta += friendMorale
				case strings.Contains(status, "Dislike"), strings.Contains(status, "Hate"):
					delta += rivalMorale
				}
			}
			if delta == 0 {
				continue
			}
			scaled := int(math.Round(float64(delta) * mult))
			morale[p.ID] = model.ClampScale(old + scaled)
		}
	}

	out := Effects{Morale: map[string]int{}, Heat: map[string]int{}}
	for id, v := range morale {
		if v != base.Morale[id] {
			out.Morale[id] = v
		}
	}
	for id, v := range heat {
		if v != base.Heat[id] {
			out.Heat[id] = v
		}
	}
	return out
}

type relIndex map[[2]string]string

func relationshipIndex(rels []*model.Relationship) relIndex {
	idx := make(relIndex, len(rels)*2)
	for _, r := range rels {
		if r == nil {
			continue
		}
		idx[[2]string{r.PersonAID, r.PersonBID}] = r.Status
		idx[[2]string{r.PersonBID, r.PersonAID}] = r.Status
	}
	return idx
}

func (idx relIndex) status(a, b string) string {
	return idx[[2]string{a, b}]
}
