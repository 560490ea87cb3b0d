// Package geo provides shared geographic types for CleanSky services.
package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a coordinate is outside valid ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// SentinelCurrentLocation marks a coordinate whose name was assigned by the
// geolocation layer rather than chosen by the user. Display code replaces it
// with a formatted lat/lon label.
const SentinelCurrentLocation = "Current Location"

// Coordinate identifies a query point. Name is cosmetic and is not part of
// any cache key.
type Coordinate struct {
	Lat  float64
	Lon  float64
	Name string
}

// DefaultLocation is the fallback coordinate used when geolocation fails
// (Tashkent).
var DefaultLocation = Coordinate{Lat: 41.2995, Lon: 69.2401, Name: "Tashkent (Default)"}

// Cities is the predefined city list offered by the dashboard.
var Cities = []Coordinate{
	{Name: "Tashkent", Lat: 41.2995, Lon: 69.2401},
	{Name: "Samarkand", Lat: 39.6270, Lon: 66.9750},
	{Name: "Bukhara", Lat: 39.7681, Lon: 64.4556},
	{Name: "Andijan", Lat: 40.7829, Lon: 72.3442},
	{Name: "Nukus", Lat: 42.4619, Lon: 59.6166},
	{Name: "London", Lat: 51.5074, Lon: -0.1278},
	{Name: "New York", Lat: 40.7128, Lon: -74.0060},
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503},
}

// Validate checks that the coordinate is within valid lat/lon ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// CacheKey returns the coordinate truncated to 4 decimal places (~11m).
// Two physically distinct but very close coordinates may share a key; this
// is an accepted approximation.
func (c Coordinate) CacheKey() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// DisplayLabel returns the human-visible label for the coordinate: the
// supplied name, unless it is empty or the geolocation sentinel, in which
// case a formatted "lat°N, lon°E" string is used.
func (c Coordinate) DisplayLabel() string {
	if c.Name != "" && c.Name != SentinelCurrentLocation {
		return c.Name
	}
	return fmt.Sprintf("%.2f°N, %.2f°E", c.Lat, c.Lon)
}
