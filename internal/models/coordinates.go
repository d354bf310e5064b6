package models

import (
	"encoding/json"
	"fmt"
)

// Coordinate bounds for WGS84 lat/lng pairs.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Coordinates is a WGS84 point. The zero value (0,0) is the placeholder used
// when the registry omits a location.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Validate reports whether the point lies within WGS84 bounds.
func (c Coordinates) Validate() error {
	if c.Lat < MinLatitude || c.Lat > MaxLatitude {
		return fmt.Errorf("latitude must be between %f and %f, got %f", MinLatitude, MaxLatitude, c.Lat)
	}
	if c.Lng < MinLongitude || c.Lng > MaxLongitude {
		return fmt.Errorf("longitude must be between %f and %f, got %f", MinLongitude, MaxLongitude, c.Lng)
	}
	return nil
}

// MarshalJSON renders the point as {"lat":..,"lng":..} for the frontend.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}{Lat: c.Lat, Lng: c.Lng})
}

// UnmarshalJSON parses {"lat":..,"lng":..} and rejects out-of-range points.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pt struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &pt); err != nil {
		return fmt.Errorf("failed to unmarshal coordinates: %w", err)
	}
	parsed := Coordinates{Lat: pt.Lat, Lng: pt.Lng}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}
