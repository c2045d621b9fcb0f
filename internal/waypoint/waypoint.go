// Package waypoint defines the waypoint record and reads waypoint collections
// from delimited text sources.
package waypoint

import (
	"encoding/json"
	"math"
)

// Waypoint is a named geographic point. Name is its identity key.
type Waypoint struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Altitude    float64 `json:"altitude"`
}

// Valid reports whether the coordinates are finite numbers.
func (w Waypoint) Valid() bool {
	return finite(w.Latitude) && finite(w.Longitude)
}

// MarshalJSON encodes non-finite numbers as null, which encoding/json
// otherwise refuses to encode.
func (w Waypoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Altitude    *float64 `json:"altitude"`
	}{
		Name:        w.Name,
		Description: w.Description,
		Latitude:    nullable(w.Latitude),
		Longitude:   nullable(w.Longitude),
		Altitude:    nullable(w.Altitude),
	})
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func nullable(f float64) *float64 {
	if !finite(f) {
		return nil
	}
	return &f
}
