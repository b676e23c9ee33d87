package models

import (
	"fmt"

	"github.com/umahmood/haversine"
)

type Key string

// Represents a geographical coordinate with latitude and longitude.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Create a new Coordinate instance with the given latitude and longitude.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Latitude:  lat,
		Longitude: lon,
	}
}

// Return a string representation of the coordinate in the format "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}

// Check if the coordinate is valid (latitude between -90 and 90, longitude between -180 and 180).
func (c Coordinate) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Calculate the distance to another coordinate in kilometres using the Haversine formula.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: c.Latitude, Lon: c.Longitude},
		haversine.Coord{Lat: other.Latitude, Lon: other.Longitude},
	)
	return km
}

// Represents the rectangular service-area region outside which a ride is
// considered invalid.
type BoundingBox struct {
	MinLat float64 `yaml:"lat_min" validate:"gte=-90,lte=90"`
	MaxLat float64 `yaml:"lat_max" validate:"gte=-90,lte=90"`
	MinLng float64 `yaml:"lng_min" validate:"gte=-180,lte=180"`
	MaxLng float64 `yaml:"lng_max" validate:"gte=-180,lte=180"`
}

// Check if the coordinate lies within the bounding box. The range test is
// inclusive on all four edges.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLng && c.Longitude <= b.MaxLng
}

// Check if the box is the zero value (no box configured).
func (b BoundingBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}
