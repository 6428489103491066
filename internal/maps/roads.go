// README: Road snapping adapter over the Google Roads API.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"guardian/internal/types"
)

// ErrBadSnapResponse means the snap response did not cover every input point.
var ErrBadSnapResponse = errors.New("malformed snap-to-roads response")

type roadsAPI interface {
	SnapToRoad(ctx context.Context, r *maps.SnapToRoadRequest) (*maps.SnapToRoadResponse, error)
}

// RoadsService projects free-form coordinates onto the nearest drivable road.
type RoadsService struct {
	api roadsAPI
}

func NewRoadsService(api roadsAPI) *RoadsService {
	return &RoadsService{api: api}
}

// Snap sends the whole candidate batch as one request and returns one snapped
// point per input, in input order. The service reports its own ordering via
// OriginalIndex; any input index left uncovered is a data error.
func (s *RoadsService) Snap(ctx context.Context, points []types.Point) ([]types.Point, error) {
	if len(points) == 0 {
		return nil, nil
	}

	path := make([]maps.LatLng, len(points))
	for i, p := range points {
		path[i] = maps.LatLng{Lat: p.Lat, Lng: p.Lng}
	}

	resp, err := s.api.SnapToRoad(ctx, &maps.SnapToRoadRequest{Path: path})
	if err != nil {
		return nil, fmt.Errorf("roads api error: %w", err)
	}
	if resp == nil || len(resp.SnappedPoints) == 0 {
		return nil, ErrBadSnapResponse
	}

	out := make([]types.Point, len(points))
	covered := make([]bool, len(points))
	for _, sp := range resp.SnappedPoints {
		if sp.OriginalIndex == nil {
			// interpolated point, not tied to an input
			continue
		}
		i := *sp.OriginalIndex
		if i < 0 || i >= len(points) {
			return nil, ErrBadSnapResponse
		}
		if !covered[i] {
			out[i] = types.Point{Lat: sp.Location.Lat, Lng: sp.Location.Lng}
			covered[i] = true
		}
	}
	for _, ok := range covered {
		if !ok {
			return nil, ErrBadSnapResponse
		}
	}
	return out, nil
}
