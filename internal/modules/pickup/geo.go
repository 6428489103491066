// Package pickup — geo.go contains pure geometric helpers for candidate
// generation. The projection is a flat-earth local approximation, only good
// for offsets up to a few hundred meters.
package pickup

import (
	"math"

	"guardian/internal/config"
	"guardian/internal/types"
)

// Meters per degree at the deployment latitude.
const (
	metersPerDegreeLat = 111073.25
	metersPerDegreeLng = 82850.73
)

// Project offsets origin by distanceMeters along bearingDegrees.
func Project(origin types.Point, distanceMeters, bearingDegrees float64) types.Point {
	rad := degreesToRadians(bearingDegrees)
	dx := distanceMeters * math.Cos(rad)
	dy := distanceMeters * math.Sin(rad)
	return types.Point{
		Lat: origin.Lat + dx/metersPerDegreeLat,
		Lng: origin.Lng + dy/metersPerDegreeLng,
	}
}

// effectiveMotion applies the stationary-rider policy: near-zero speed gives
// no usable heading signal, so a canonical pedestrian speed, heading, and
// offset spread are substituted from configuration.
func effectiveMotion(cfg config.PickupConfig, m types.Motion) (types.Motion, []float64) {
	if m.Speed < cfg.StationaryThreshold {
		return types.Motion{
			Speed:   cfg.StationarySpeed,
			Heading: normalizeHeading(cfg.StationaryHeading),
		}, cfg.StationaryOffsets
	}
	return types.Motion{Speed: m.Speed, Heading: normalizeHeading(m.Heading)}, cfg.HeadingOffsets
}

// generateCandidates emits the cross product of distance scalars and heading
// offsets around the rider's projected path. Count is always
// len(scalars) × len(offsets).
func generateCandidates(origin types.Point, heading, walkableMeters float64, scalars, offsets []float64) []Candidate {
	out := make([]Candidate, 0, len(scalars)*len(offsets))
	for _, s := range scalars {
		for _, off := range offsets {
			out = append(out, Candidate{
				Raw: Project(origin, s*walkableMeters, heading+off),
			})
		}
	}
	return out
}

func normalizeHeading(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

const earthRadiusMeters = 6371000.0

// haversineMeters returns the great-circle distance between two points.
func haversineMeters(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
