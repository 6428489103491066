// README: Pickup planning models; all transient, scoped to one request.
package pickup

import (
	"guardian/internal/maps"
	"guardian/internal/types"
)

// Candidate is a geometrically generated meeting point, before snapping.
type Candidate struct {
	Raw types.Point
}

// Request is the rider's reported position and motion.
type Request struct {
	Origin types.Point
	Motion types.Motion
}

// Plan is the selected rendezvous: the audit trail of generated and snapped
// points plus the winning walking route. It exists only as the response
// payload for one request.
type Plan struct {
	ProductID    string        `json:"product_id"`
	WaitSeconds  float64       `json:"wait_seconds"`
	WalkSeconds  int           `json:"walk_seconds"`
	PreSnapped   []types.Point `json:"pre_snapped"`
	Snapped      []types.Point `json:"snapped"`
	Legs         []maps.Leg    `json:"legs"`
	MeetingPoint types.Point   `json:"meeting_point"`
}
