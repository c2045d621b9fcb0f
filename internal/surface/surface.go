// Package surface dispatches map rendering to the selected provider widget.
package surface

import (
	"bytes"
	"errors"
	"html/template"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/waymap/internal/provider"
	"github.com/woozymasta/waymap/internal/waypoint"
)

// Rendered is the output of a map surface render: either widget markup or
// a notice explaining why no map is drawn.
type Rendered struct {
	Kind   provider.Kind
	HTML   template.HTML
	Notice string
}

// Surface renders the map area.
type Surface struct {
	registry *provider.Registry
}

// New returns a surface backed by registry.
func New(registry *provider.Registry) *Surface {
	return &Surface{registry: registry}
}

// Render draws locations with the widget for kind, focusing selected when set.
// A missing credential yields a notice instead of markup and no error.
func (s *Surface) Render(kind provider.Kind, locations []waypoint.Waypoint, selected *waypoint.Waypoint) (Rendered, error) {
	widget, cred, err := s.registry.Lookup(kind)
	if err != nil {
		var mce *provider.MissingCredentialError
		if errors.As(err, &mce) {
			log.Debug().Str("provider", string(mce.Kind)).Msg("Map surface short-circuited: missing credential")
			return Rendered{Kind: mce.Kind, Notice: mce.Notice()}, nil
		}
		return Rendered{}, err
	}

	var buf bytes.Buffer
	err = widget.Render(&buf, provider.Scene{
		Locations:  locations,
		Selected:   selected,
		Credential: cred,
		View:       s.registry.View(),
	})
	if err != nil {
		return Rendered{}, err
	}

	// widget output comes from html/template and is already escaped
	return Rendered{Kind: widget.Kind(), HTML: template.HTML(buf.String())}, nil
}
