// README: Sandbox decorator that force-advances simulated request status on
// each poll so development flows progress without real drivers. Selected by
// configuration in main; never enabled implicitly.
package dispatch

import (
	"context"

	"github.com/sirupsen/logrus"

	"guardian/internal/types"
)

type Sandbox struct {
	inner *Client
	log   *logrus.Entry
}

func NewSandbox(inner *Client, log *logrus.Logger) *Sandbox {
	return &Sandbox{inner: inner, log: log.WithField("component", "dispatch-sandbox")}
}

func (s *Sandbox) EstimateWait(ctx context.Context, token string, p types.Point) (WaitEstimate, error) {
	return s.inner.EstimateWait(ctx, token, p)
}

func (s *Sandbox) CreateRequest(ctx context.Context, token, productID string, start types.Point, end *types.Point) (string, error) {
	return s.inner.CreateRequest(ctx, token, productID, start, end)
}

// GetRequest reads the current state, then nudges the simulated request one
// step along the happy path so the next poll observes progress. The caller
// always sees the pre-advance state, and progress stays paced by the caller's
// own poll intervals, so a simulated trip still takes several polls to reach
// in_progress instead of resolving on the first check.
func (s *Sandbox) GetRequest(ctx context.Context, token, requestID string) (Details, error) {
	d, err := s.inner.GetRequest(ctx, token, requestID)
	if err != nil {
		return Details{}, err
	}

	var next Status
	switch d.Status {
	case StatusRequested:
		next = StatusAccepted
	case StatusAccepted:
		next = StatusInProgress
	default:
		return d, nil
	}
	if err := s.inner.SetStatus(ctx, token, requestID, next); err != nil {
		s.log.WithError(err).WithField("request_id", requestID).Warn("sandbox status advance failed")
		return d, nil
	}
	s.log.WithFields(logrus.Fields{"request_id": requestID, "status": next}).Debug("sandbox advanced status")
	return d, nil
}
