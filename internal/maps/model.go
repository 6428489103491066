// README: Walking route model shared between the maps adapters and the pickup planner.
package maps

import "guardian/internal/types"

type Step struct {
	End types.Point `json:"end_location"`
}

type Leg struct {
	DurationSeconds int    `json:"duration_seconds"`
	Steps           []Step `json:"steps"`
}

// Route is one walking route as scored by the directions service. Legs are
// kept in order and never mutated; they feed the response payload and the
// final arrival point.
type Route struct {
	Legs []Leg `json:"legs"`
}

// DurationSeconds is the sum of all leg durations.
func (r Route) DurationSeconds() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.DurationSeconds
	}
	return total
}

// ArrivalPoint returns the end location of the last step of the last leg.
func (r Route) ArrivalPoint() (types.Point, bool) {
	if len(r.Legs) == 0 {
		return types.Point{}, false
	}
	last := r.Legs[len(r.Legs)-1]
	if len(last.Steps) == 0 {
		return types.Point{}, false
	}
	return last.Steps[len(last.Steps)-1].End, true
}
