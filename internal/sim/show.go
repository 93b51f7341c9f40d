package sim

import (
	"math"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// Card position weights.
const (
	openerWeight    = 1.2
	mainEventWeight = 2.0
	midCardWeight   = 1.0
)

// SlotWeights returns the aggregation weight for every card slot. Empty
// (nil) slots weigh 0 and are excluded from all downstream math. The first
// non-empty slot carries the opener bonus and the last non-empty slot the
// main-event bonus; opener and main-event detection are independent, so on a
// one-segment card both bonuses land on the same slot and compound
// (1.2 x 2.0 = 2.4).
func SlotWeights(segments []*model.Segment) []float64 {
	weights := make([]float64, len(segments))
	first, last := -1, -1
	for i, seg := range segments {
		if seg == nil {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
		weights[i] = midCardWeight
	}
	if first >= 0 {
		weights[first] *= openerWeight
	}
	if last >= 0 {
		weights[last] *= mainEventWeight
	}
	return weights
}

// OverallRating aggregates already-rated segments into the show rating:
// floor of the weighted mean, or 0 when nothing was booked.
func OverallRating(segments []*model.Segment) int {
	weights := SlotWeights(segments)
	var sum, total float64
	for i, seg := range segments {
		if seg == nil {
			continue
		}
		sum += float64(seg.Rating) * weights[i]
		total += weights[i]
	}
	if total == 0 {
		return 0
	}
	return int(math.Floor(sum / total))
}
