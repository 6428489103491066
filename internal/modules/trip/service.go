// README: Dispatch state machine: place the vehicle order, poll until it is
// accepted, notify, then poll until the trip is in progress.
package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"guardian/internal/clock"
	"guardian/internal/config"
	"guardian/internal/dispatch"
	"guardian/internal/modules/rider"
	"guardian/internal/types"
)

var (
	// ErrNoDrivers and ErrDriverCanceled are backend-declared terminal
	// states, not transient errors. They abort the whole flow immediately.
	ErrNoDrivers      = errors.New("no drivers available")
	ErrDriverCanceled = errors.New("driver canceled")
	// ErrPollTimeout is the hardening bound on the otherwise unbounded
	// upstream polling behavior.
	ErrPollTimeout = errors.New("gave up waiting for dispatch status change")
)

// Backend is the slice of the dispatch API the state machine needs.
type Backend interface {
	CreateRequest(ctx context.Context, token, productID string, start types.Point, end *types.Point) (string, error)
	GetRequest(ctx context.Context, token, requestID string) (dispatch.Details, error)
}

// Notifier runs the post-acceptance notification sequence.
type Notifier interface {
	Run(ctx context.Context, r *rider.Rider, driverPhone string, etaSeconds float64) error
}

type Service struct {
	backend  Backend
	notifier Notifier
	clk      clock.Clock
	cfg      config.TripConfig
	env      string
	log      *logrus.Entry
}

func NewService(backend Backend, notifier Notifier, clk clock.Clock, cfg config.TripConfig, env string, log *logrus.Logger) *Service {
	return &Service{
		backend:  backend,
		notifier: notifier,
		clk:      clk,
		cfg:      cfg,
		env:      env,
		log:      log.WithField("component", "trip"),
	}
}

// PlaceOrder creates the vehicle request at the meeting point. Production
// orders carry no destination; the rider sets one in the vehicle. Outside
// production the configured fallback destination stands in for a real
// drop-off, purely as a simulation aid.
func (s *Service) PlaceOrder(ctx context.Context, token, productID string, meeting types.Point) (string, error) {
	var end *types.Point
	if s.env != config.EnvProduction {
		end = &s.cfg.FallbackDestination
	}
	requestID, err := s.backend.CreateRequest(ctx, token, productID, meeting, end)
	if err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}
	s.log.WithField("request_id", requestID).Info("vehicle order placed")
	return requestID, nil
}

// AwaitAcceptance polls until the request leaves the requested state.
func (s *Service) AwaitAcceptance(ctx context.Context, token, requestID string) (dispatch.Details, error) {
	return s.poll(ctx, token, requestID, s.cfg.AcceptPollInterval, func(st dispatch.Status) bool {
		return st != dispatch.StatusRequested
	})
}

// AwaitInProgress polls until the rider is in the vehicle.
func (s *Service) AwaitInProgress(ctx context.Context, token, requestID string) (dispatch.Details, error) {
	return s.poll(ctx, token, requestID, s.cfg.ProgressPollInterval, func(st dispatch.Status) bool {
		return st == dispatch.StatusInProgress
	})
}

// poll checks the request on a fixed interval until done reports the status
// satisfied. Terminal backend states fail fast. PollMaxWait bounds the loop;
// zero keeps it unbounded.
func (s *Service) poll(ctx context.Context, token, requestID string, interval time.Duration, done func(dispatch.Status) bool) (dispatch.Details, error) {
	deadline := s.cfg.PollMaxWait
	start := s.clk.Now()
	for {
		d, err := s.backend.GetRequest(ctx, token, requestID)
		if err != nil {
			return dispatch.Details{}, fmt.Errorf("poll request: %w", err)
		}
		if d.Status.Terminal() {
			if d.Status == dispatch.StatusNoDrivers {
				return dispatch.Details{}, ErrNoDrivers
			}
			return dispatch.Details{}, ErrDriverCanceled
		}
		if done(d.Status) {
			return d, nil
		}
		if deadline > 0 && s.clk.Now().Sub(start) >= deadline {
			return dispatch.Details{}, ErrPollTimeout
		}
		if err := s.clk.Sleep(ctx, interval); err != nil {
			return dispatch.Details{}, err
		}
	}
}

// Escort drives the whole post-planning flow for one trip. It is launched
// after the HTTP response has been written; every failure here is logged, not
// surfaced to the rider.
func (s *Service) Escort(ctx context.Context, r *rider.Rider, productID string, meeting types.Point) {
	log := s.log.WithField("rider", r.UUID)
	state := StateCreated

	requestID, err := s.PlaceOrder(ctx, r.AccessToken, productID, meeting)
	if err != nil {
		log.WithError(err).Error("escort aborted")
		return
	}
	state = advance(log, state, StateRequested)

	details, err := s.AwaitAcceptance(ctx, r.AccessToken, requestID)
	if err != nil {
		advance(log, state, StateFailed)
		log.WithError(err).WithField("request_id", requestID).Error("dispatch failed before acceptance")
		return
	}
	state = advance(log, state, stateFor(details.Status))
	log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"eta_minutes": details.ETAMinutes,
	}).Info("vehicle accepted")

	if details.Driver == nil || details.Driver.PhoneNumber == "" {
		log.WithField("request_id", requestID).Warn("no driver phone in dispatch details; skipping notifications")
	} else if err := s.notifier.Run(ctx, r, details.Driver.PhoneNumber, details.ETAMinutes*60.0); err != nil {
		log.WithError(err).Warn("notification sequence incomplete")
	}

	if _, err := s.AwaitInProgress(ctx, r.AccessToken, requestID); err != nil {
		advance(log, state, StateFailed)
		log.WithError(err).WithField("request_id", requestID).Error("dispatch failed before trip start")
		return
	}
	advance(log, state, StateInProgress)
	log.WithField("request_id", requestID).Info("trip in progress")
}

// advance moves the local state, flagging transitions the table does not
// allow. The backend remains the source of truth; this only guards the log.
func advance(log *logrus.Entry, from, to State) State {
	if from != to && !CanTransition(from, to) {
		log.WithFields(logrus.Fields{"from": from, "to": to}).Warn("unexpected trip state transition")
	}
	return to
}
