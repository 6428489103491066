// README: Road snapping tests against a faked Roads API.
package maps

import (
	"context"
	"errors"
	"testing"

	"googlemaps.github.io/maps"

	"guardian/internal/types"
)

type fakeRoadsAPI struct {
	resp *maps.SnapToRoadResponse
	err  error
	got  *maps.SnapToRoadRequest
}

func (f *fakeRoadsAPI) SnapToRoad(ctx context.Context, r *maps.SnapToRoadRequest) (*maps.SnapToRoadResponse, error) {
	f.got = r
	return f.resp, f.err
}

func idx(i int) *int { return &i }

func TestSnapRestoresInputOrder(t *testing.T) {
	in := []types.Point{
		{Lat: 41.90, Lng: -87.65},
		{Lat: 41.91, Lng: -87.66},
	}
	// response arrives reversed relative to the input
	api := &fakeRoadsAPI{resp: &maps.SnapToRoadResponse{SnappedPoints: []maps.SnappedPoint{
		{Location: maps.LatLng{Lat: 41.9101, Lng: -87.6601}, OriginalIndex: idx(1)},
		{Location: maps.LatLng{Lat: 41.9001, Lng: -87.6501}, OriginalIndex: idx(0)},
	}}}
	svc := NewRoadsService(api)

	out, err := svc.Snap(context.Background(), in)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d points, want 2", len(out))
	}
	if out[0].Lat != 41.9001 || out[1].Lat != 41.9101 {
		t.Errorf("order not restored: %v", out)
	}
	if len(api.got.Path) != 2 {
		t.Errorf("request path length = %d, want 2", len(api.got.Path))
	}
}

func TestSnapSkipsInterpolatedPoints(t *testing.T) {
	in := []types.Point{{Lat: 41.90, Lng: -87.65}}
	api := &fakeRoadsAPI{resp: &maps.SnapToRoadResponse{SnappedPoints: []maps.SnappedPoint{
		{Location: maps.LatLng{Lat: 41.95, Lng: -87.70}}, // interpolated, no index
		{Location: maps.LatLng{Lat: 41.9001, Lng: -87.6501}, OriginalIndex: idx(0)},
	}}}
	svc := NewRoadsService(api)

	out, err := svc.Snap(context.Background(), in)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if out[0].Lat != 41.9001 {
		t.Errorf("out[0] = %v, want the indexed point", out[0])
	}
}

func TestSnapBadResponses(t *testing.T) {
	in := []types.Point{
		{Lat: 41.90, Lng: -87.65},
		{Lat: 41.91, Lng: -87.66},
	}
	cases := []struct {
		name string
		resp *maps.SnapToRoadResponse
	}{
		{"empty response", &maps.SnapToRoadResponse{}},
		{"missing input coverage", &maps.SnapToRoadResponse{SnappedPoints: []maps.SnappedPoint{
			{Location: maps.LatLng{Lat: 41.9}, OriginalIndex: idx(0)},
		}}},
		{"index out of range", &maps.SnapToRoadResponse{SnappedPoints: []maps.SnappedPoint{
			{Location: maps.LatLng{Lat: 41.9}, OriginalIndex: idx(0)},
			{Location: maps.LatLng{Lat: 41.9}, OriginalIndex: idx(5)},
		}}},
	}
	for _, tc := range cases {
		svc := NewRoadsService(&fakeRoadsAPI{resp: tc.resp})
		if _, err := svc.Snap(context.Background(), in); !errors.Is(err, ErrBadSnapResponse) {
			t.Errorf("%s: err = %v, want ErrBadSnapResponse", tc.name, err)
		}
	}
}

func TestSnapEmptyInput(t *testing.T) {
	svc := NewRoadsService(&fakeRoadsAPI{})
	out, err := svc.Snap(context.Background(), nil)
	if err != nil || out != nil {
		t.Errorf("Snap(nil) = %v, %v; want nil, nil", out, err)
	}
}

func TestSnapAPIError(t *testing.T) {
	boom := errors.New("quota exceeded")
	svc := NewRoadsService(&fakeRoadsAPI{err: boom})
	if _, err := svc.Snap(context.Background(), []types.Point{{Lat: 41.9, Lng: -87.65}}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped api error", err)
	}
}
