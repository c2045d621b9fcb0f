// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when the configuration file omits a value.
const (
	DefaultTitle       = "Waypoints"
	DefaultSource      = "waypoints.csv"
	DefaultZoom        = 11
	DefaultFocusZoom   = 14
	DefaultFlyDuration = 1500 * time.Millisecond
)

// DefaultCenter is the overview center (Corryong airfield).
var DefaultCenter = LatLng{Lat: -36.185, Lng: 147.8914}

// Config represents the root configuration file structure.
type Config struct {
	Title       string        `yaml:"title,omitempty"`
	Source      string        `yaml:"source,omitempty"` // local path or http(s) URL of the waypoint CSV
	Center      *LatLng       `yaml:"center,omitempty"`
	Credentials Credentials   `yaml:"credentials,omitempty"`
	Zoom        int           `yaml:"zoom,omitempty"`
	FocusZoom   int           `yaml:"focus_zoom,omitempty"`
	FlyDuration time.Duration `yaml:"fly_duration,omitempty"`
}

// LatLng is a geographic point in degrees.
type LatLng struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Credentials holds access tokens for the paid map providers.
type Credentials struct {
	Mapbox string `yaml:"mapbox,omitempty"`
	Google string `yaml:"google,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Override replaces file values with non-empty command-line values.
func (c *Config) Override(source string, creds Credentials) {
	if source != "" {
		c.Source = source
	}
	if creds.Mapbox != "" {
		c.Credentials.Mapbox = creds.Mapbox
	}
	if creds.Google != "" {
		c.Credentials.Google = creds.Google
	}
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Center == nil {
		center := DefaultCenter
		c.Center = &center
	}
	if c.Zoom <= 0 {
		c.Zoom = DefaultZoom
	}
	if c.FocusZoom <= 0 {
		c.FocusZoom = DefaultFocusZoom
	}
	if c.FlyDuration <= 0 {
		c.FlyDuration = DefaultFlyDuration
	}
}
