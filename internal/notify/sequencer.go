// README: Ordered post-dispatch notifications: call the driver, text the
// trusted contact, then a delayed "in the vehicle" confirmation.
package notify

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"guardian/internal/auth"
	"guardian/internal/clock"
	"guardian/internal/modules/rider"
)

// ETAMinutes renders an ETA in whole minutes, rounded up.
func ETAMinutes(etaSeconds float64) int {
	return int(math.Ceil(etaSeconds / 60.0))
}

type Sequencer struct {
	gateway   Gateway
	clk       clock.Clock
	log       *logrus.Entry
	from      string
	hostname  string
	secret    string
	safeDelay time.Duration
}

func NewSequencer(gateway Gateway, clk clock.Clock, log *logrus.Logger, from, hostname, secret string, safeDelay time.Duration) *Sequencer {
	return &Sequencer{
		gateway:   gateway,
		clk:       clk,
		log:       log.WithField("component", "notify"),
		from:      from,
		hostname:  hostname,
		secret:    secret,
		safeDelay: safeDelay,
	}
}

// Run performs the notification sequence in strict order; a failure aborts the
// remaining steps. The HTTP response for the pickup computation has long been
// sent, so errors are logged here and returned only for the caller's log.
func (s *Sequencer) Run(ctx context.Context, r *rider.Rider, driverPhone string, etaSeconds float64) error {
	if r.EmergencyContact == "" {
		s.log.WithField("rider", r.UUID).Warn("no emergency contact registered; skipping notifications")
		return rider.ErrNoEmergencyContact
	}

	to, err := rider.NormalizePhone(driverPhone)
	if err != nil {
		s.log.WithError(err).Warn("driver phone unusable; skipping notifications")
		return err
	}

	callbackURL := auth.VoiceCallbackURL(s.hostname, s.secret, r.UUID, etaSeconds)
	if err := s.gateway.Call(ctx, to, s.from, callbackURL); err != nil {
		s.log.WithError(err).Error("driver call failed")
		return err
	}

	started := fmt.Sprintf(
		"Hey it's %s, I'm walking through a place that's a little sketchy, so I called a car to pick me up. "+
			"I'll let you know when I'm ok. I should be there in %d minutes.",
		r.DisplayName(), ETAMinutes(etaSeconds),
	)
	if err := s.gateway.SendMessage(ctx, r.EmergencyContact, s.from, started); err != nil {
		s.log.WithError(err).Error("trip-started text failed")
		return err
	}

	if err := s.clk.Sleep(ctx, s.safeDelay); err != nil {
		return err
	}
	safe := fmt.Sprintf(
		"Hey it's %s, just wanted to let you know I'm in the car and good to go.",
		r.DisplayName(),
	)
	if err := s.gateway.SendMessage(ctx, r.EmergencyContact, s.from, safe); err != nil {
		s.log.WithError(err).Error("safe-arrival text failed")
		return err
	}
	return nil
}
