package domain

import "fmt"

// Location identifies a point on earth.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// String renders the coordinates as "lat, lon".
func (l Location) String() string {
	return fmt.Sprintf("%g, %g", l.Latitude, l.Longitude)
}
