// README: Walking-time oracle over the Google Directions API.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"guardian/internal/types"
)

// ErrNoRoute means the directions service reported zero walking routes.
var ErrNoRoute = errors.New("no walking route between points")

type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// DirectionsService computes walking durations and legs between two points.
type DirectionsService struct {
	api directionsAPI
}

func NewDirectionsService(api directionsAPI) *DirectionsService {
	return &DirectionsService{api: api}
}

// WalkingRoute returns the first route the service ranks for walking from
// `from` to `to`. The service's own ranking is trusted; ties are not re-scored.
func (s *DirectionsService) WalkingRoute(ctx context.Context, from, to types.Point) (Route, error) {
	req := &maps.DirectionsRequest{
		Origin:      (&maps.LatLng{Lat: from.Lat, Lng: from.Lng}).String(),
		Destination: (&maps.LatLng{Lat: to.Lat, Lng: to.Lng}).String(),
		Mode:        maps.TravelModeWalking,
		Units:       maps.UnitsMetric,
	}

	routes, _, err := s.api.Directions(ctx, req)
	if err != nil {
		return Route{}, fmt.Errorf("directions api error: %w", err)
	}
	if len(routes) == 0 {
		return Route{}, ErrNoRoute
	}

	var route Route
	for _, leg := range routes[0].Legs {
		l := Leg{DurationSeconds: int(leg.Duration.Seconds())}
		for _, step := range leg.Steps {
			l.Steps = append(l.Steps, Step{End: types.Point{
				Lat: step.EndLocation.Lat,
				Lng: step.EndLocation.Lng,
			}})
		}
		route.Legs = append(route.Legs, l)
	}
	return route, nil
}
