// README: Transition-table tests.
package trip

import (
	"testing"

	"guardian/internal/dispatch"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		// happy path
		{StateCreated, StateRequested, true},
		{StateRequested, StateAccepted, true},
		{StateAccepted, StateInProgress, true},
		{StateInProgress, StateCompleted, true},
		// failures before and after acceptance
		{StateRequested, StateFailed, true},
		{StateAccepted, StateFailed, true},
		// a fast backend can pass accepted between two polls
		{StateRequested, StateInProgress, true},
		// invalid: skipping states
		{StateCreated, StateAccepted, false},
		{StateCreated, StateInProgress, false},
		// invalid: terminal states have no outgoing transitions
		{StateCompleted, StateRequested, false},
		{StateFailed, StateRequested, false},
		// invalid: going backwards
		{StateAccepted, StateRequested, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStateForStatus(t *testing.T) {
	cases := []struct {
		status dispatch.Status
		want   State
	}{
		{dispatch.StatusRequested, StateRequested},
		{dispatch.StatusAccepted, StateAccepted},
		{dispatch.StatusInProgress, StateInProgress},
		{dispatch.StatusCompleted, StateCompleted},
		{dispatch.StatusNoDrivers, StateFailed},
		{dispatch.StatusDriverCanceled, StateFailed},
	}
	for _, tc := range cases {
		if got := stateFor(tc.status); got != tc.want {
			t.Errorf("stateFor(%s) = %s, want %s", tc.status, got, tc.want)
		}
	}
}
