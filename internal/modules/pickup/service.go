// README: Pickup planner; fans out candidates, snaps them, scores walking
// times concurrently, and picks the point that best matches the vehicle wait.
package pickup

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"guardian/internal/config"
	"guardian/internal/dispatch"
	"guardian/internal/maps"
	"guardian/internal/types"
)

// ErrNoValidRoute means no candidate's walking time fell inside the
// acceptance window. Terminal for the request: no retry, no window relaxation.
var ErrNoValidRoute = errors.New("no valid route to any candidate pickup point")

type WaitEstimator interface {
	EstimateWait(ctx context.Context, token string, p types.Point) (dispatch.WaitEstimate, error)
}

type Snapper interface {
	Snap(ctx context.Context, points []types.Point) ([]types.Point, error)
}

type Router interface {
	WalkingRoute(ctx context.Context, from, to types.Point) (maps.Route, error)
}

type Service struct {
	estimator WaitEstimator
	snapper   Snapper
	router    Router
	cfg       config.PickupConfig
	log       *logrus.Entry
}

func NewService(estimator WaitEstimator, snapper Snapper, router Router, cfg config.PickupConfig, log *logrus.Logger) *Service {
	return &Service{
		estimator: estimator,
		snapper:   snapper,
		router:    router,
		cfg:       cfg,
		log:       log.WithField("component", "pickup"),
	}
}

// Plan selects the rendezvous point for a moving rider. The wait estimate is
// fetched once and treated as immutable for the rest of the computation.
func (s *Service) Plan(ctx context.Context, token string, req Request) (*Plan, error) {
	est, err := s.estimator.EstimateWait(ctx, token, req.Origin)
	if err != nil {
		return nil, err
	}

	motion, offsets := effectiveMotion(s.cfg, req.Motion)
	walkable := motion.Speed * est.WaitSeconds
	s.log.WithFields(logrus.Fields{
		"wait_seconds":    est.WaitSeconds,
		"walkable_meters": walkable,
		"speed":           motion.Speed,
		"heading":         motion.Heading,
	}).Debug("planning pickup")

	candidates := generateCandidates(req.Origin, motion.Heading, walkable, s.cfg.DistanceScalars, offsets)
	raw := make([]types.Point, len(candidates))
	for i, c := range candidates {
		raw[i] = c.Raw
	}

	snapped, err := s.snapper.Snap(ctx, raw)
	if err != nil {
		return nil, err
	}

	routes := s.walkingRoutes(ctx, req.Origin, snapped)

	target := est.WaitSeconds
	lower := target - s.cfg.WaitWindowLower.Seconds()
	upper := target + s.cfg.WaitWindowUpper.Seconds()

	type scored struct {
		point types.Point
		route maps.Route
		dur   float64
	}
	var survivors []scored
	for i, r := range routes {
		if r == nil {
			continue // candidate excluded, lookup failed
		}
		dur := float64(r.DurationSeconds())
		// open interval on both ends: the vehicle waits roughly two minutes
		// once arrived, so the rider must not be much earlier or later
		if dur > lower && dur < upper {
			survivors = append(survivors, scored{point: snapped[i], route: *r, dur: dur})
		}
	}
	if len(survivors) == 0 {
		return nil, ErrNoValidRoute
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return math.Abs(survivors[i].dur-target) < math.Abs(survivors[j].dur-target)
	})
	winner := survivors[0]

	meeting, ok := winner.route.ArrivalPoint()
	if !ok {
		meeting = winner.point
	}

	return &Plan{
		ProductID:    est.ProductID,
		WaitSeconds:  est.WaitSeconds,
		WalkSeconds:  int(winner.dur),
		PreSnapped:   raw,
		Snapped:      snapped,
		Legs:         winner.route.Legs,
		MeetingPoint: meeting,
	}, nil
}

// walkingRoutes issues one directions lookup per snapped point, concurrently.
// A failed lookup leaves a nil slot; the candidate is simply excluded from
// ranking rather than failing the whole selection.
func (s *Service) walkingRoutes(ctx context.Context, origin types.Point, points []types.Point) []*maps.Route {
	routes := make([]*maps.Route, len(points))
	var wg sync.WaitGroup
	for i, pt := range points {
		wg.Add(1)
		go func(i int, pt types.Point) {
			defer wg.Done()
			r, err := s.router.WalkingRoute(ctx, origin, pt)
			if err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"lat": pt.Lat, "lng": pt.Lng,
				}).Debug("candidate excluded")
				return
			}
			routes[i] = &r
		}(i, pt)
	}
	wg.Wait()
	return routes
}
