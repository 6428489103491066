// README: Trip state machine definitions over dispatch statuses.
package trip

import "guardian/internal/dispatch"

// State is the local view of one escort trip.
type State string

const (
	StateCreated    State = "created"
	StateRequested  State = "requested"
	StateAccepted   State = "accepted"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// AllowedTransitions represents the trip state flow as code. Requested may
// jump straight to in_progress: the acceptance poll returns on any departure
// from requested, and a fast backend can pass accepted between polls.
var AllowedTransitions = map[State][]State{
	StateCreated:   {StateRequested},
	StateRequested: {StateAccepted, StateInProgress, StateFailed},
	StateAccepted:  {StateInProgress, StateFailed},
	StateInProgress: {
		StateCompleted,
	},
}

func CanTransition(from, to State) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// stateFor maps a backend status onto the local state.
func stateFor(s dispatch.Status) State {
	switch s {
	case dispatch.StatusRequested:
		return StateRequested
	case dispatch.StatusAccepted:
		return StateAccepted
	case dispatch.StatusInProgress:
		return StateInProgress
	case dispatch.StatusCompleted:
		return StateCompleted
	default:
		return StateFailed
	}
}
