// Package sim holds the pure simulation math: segment rating, show
// aggregation, and post-show morale/heat effects. Everything here is
// deterministic and side-effect free; persistence lives with the session.
package sim

import (
	"math"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// Rate scores a single segment against the current roster stats, returning
// an integer in [0,100].
//
// Participants that do not resolve to a roster entry are skipped; they do
// not contribute to the average and do not fail the call. Zero resolvable
// participants rate 0. Angles are scored on charisma alone; matches blend
// charisma (0.6) with workrate (0.4). Any other type rates 0.
func Rate(seg *model.Segment, stats map[string]model.Stats) int {
	if seg == nil {
		return 0
	}

	var charisma, workrate float64
	resolved := 0
	for _, p := range seg.Participants {
		st, ok := stats[p.ID]
		if !ok {
			continue
		}
		charisma += float64(st.Charisma)
		workrate += st.Workrate()
		resolved++
	}
	if resolved == 0 {
		return 0
	}
	avgCharisma := charisma / float64(resolved)
	avgWorkrate := workrate / float64(resolved)

	var rating float64
	switch seg.Type {
	case model.SegmentAngle:
		rating = avgCharisma
	case model.SegmentMatch:
		rating = 0.6*avgCharisma + 0.4*avgWorkrate
	default:
		return 0
	}
	if rating > 100 {
		rating = 100
	}
	return int(math.Floor(rating))
}
