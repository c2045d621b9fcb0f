// Package provider defines the map rendering backends and the registry that
// resolves a provider identifier to a ready-to-render widget.
package provider

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/woozymasta/waymap/internal/config"
	"github.com/woozymasta/waymap/internal/waypoint"
)

// Kind identifies a map provider.
type Kind string

// Known providers.
const (
	Leaflet Kind = "leaflet"
	Mapbox  Kind = "mapbox"
	Google  Kind = "google"
)

// Default is the provider that needs no credential.
const Default = Leaflet

// Kinds lists providers in menu order.
var Kinds = []Kind{Leaflet, Mapbox, Google}

// ParseKind resolves a provider identifier.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Label is the human readable provider name.
func (k Kind) Label() string {
	switch k {
	case Leaflet:
		return "Leaflet (OpenStreetMap)"
	case Mapbox:
		return "Mapbox"
	case Google:
		return "Google Maps"
	default:
		return string(k)
	}
}

// CredentialEnv names the environment variable supplying the provider credential,
// or "" when the provider needs none.
func (k Kind) CredentialEnv() string {
	switch k {
	case Mapbox:
		return "MAPBOX_TOKEN"
	case Google:
		return "GOOGLE_MAPS_KEY"
	default:
		return ""
	}
}

// RequiresCredential reports whether the provider needs an access token.
func (k Kind) RequiresCredential() bool {
	return k.CredentialEnv() != ""
}

// ErrMissingCredential is matched by *MissingCredentialError.
var ErrMissingCredential = errors.New("missing credential")

// MissingCredentialError reports a provider chosen without its access token.
type MissingCredentialError struct {
	Kind Kind
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, ErrMissingCredential)
}

// Is lets errors.Is match ErrMissingCredential.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// Notice is the user-facing hint shown in place of the map.
func (e *MissingCredentialError) Notice() string {
	return fmt.Sprintf("Set %s in the environment to use %s", e.Kind.CredentialEnv(), e.Kind.Label())
}

// View is the viewport configuration shared by all widgets.
// Each widget derives its own initial viewport from it on mount.
type View struct {
	Center      config.LatLng
	Zoom        int
	FocusZoom   int
	FlyDuration time.Duration
}

// ViewFromConfig extracts the viewport settings from cfg.
func ViewFromConfig(cfg *config.Config) View {
	return View{
		Center:      *cfg.Center,
		Zoom:        cfg.Zoom,
		FocusZoom:   cfg.FocusZoom,
		FlyDuration: cfg.FlyDuration,
	}
}

// Scene is everything a widget needs to draw.
type Scene struct {
	Selected   *waypoint.Waypoint
	Credential string
	Locations  []waypoint.Waypoint
	View       View
}

// Widget renders one provider's map markup.
type Widget interface {
	Kind() Kind
	Render(w io.Writer, scene Scene) error
}
