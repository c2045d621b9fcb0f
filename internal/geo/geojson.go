// Package geo handles GeoJSON export of waypoint collections.
package geo

import (
	"math"

	"github.com/woozymasta/waymap/internal/waypoint"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]any `json:"properties" yaml:"properties"`
	Type       string         `json:"type" yaml:"type"`
	Geometry   Geometry       `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat, Alt]
}

// FromWaypoints converts waypoints into Point features, in input order.
// Waypoints without finite coordinates are left out, GeoJSON has no
// representation for them. The second return value counts skipped entries.
func FromWaypoints(locations []waypoint.Waypoint) (FeatureCollection, int) {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(locations)),
	}

	skipped := 0
	for _, w := range locations {
		if !w.Valid() {
			skipped++
			continue
		}

		coords := []float64{w.Longitude, w.Latitude}
		props := map[string]any{
			"name":        w.Name,
			"description": w.Description,
		}
		if alt := w.Altitude; !math.IsNaN(alt) && !math.IsInf(alt, 0) {
			coords = append(coords, alt)
			props["altitude"] = alt
		}

		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: coords,
			},
			Properties: props,
		})
	}

	return fc, skipped
}
