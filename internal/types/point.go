// README: Common geographic value objects used across modules.
package types

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the point lies inside the WGS84 range.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Motion is a rider's instantaneous speed and heading.
type Motion struct {
	Speed   float64 `json:"speed"`   // m/s, >= 0
	Heading float64 `json:"heading"` // degrees, normalized to [0,360)
}
