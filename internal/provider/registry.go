package provider

import (
	"html/template"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/waymap/assets"
	"github.com/woozymasta/waymap/internal/config"
)

// Option describes one entry of the provider selector.
type Option struct {
	Kind      Kind   `json:"id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// Registry maps provider kinds to widgets and their credentials.
type Registry struct {
	widgets     map[Kind]Widget
	credentials map[Kind]string
	view        View
}

// NewRegistry parses the embedded widget templates and binds credentials.
func NewRegistry(creds config.Credentials, view View) (*Registry, error) {
	tpl, err := template.ParseFS(assets.Files, "widgets/*.html.tpl")
	if err != nil {
		return nil, err
	}

	r := &Registry{
		widgets: map[Kind]Widget{
			Leaflet: leafletWidget{tpl: tpl},
			Mapbox:  mapboxWidget{tpl: tpl},
			Google:  googleWidget{tpl: tpl},
		},
		credentials: map[Kind]string{
			Mapbox: creds.Mapbox,
			Google: creds.Google,
		},
		view: view,
	}

	for _, k := range Kinds {
		if k.RequiresCredential() && r.credentials[k] == "" {
			log.Warn().
				Str("provider", string(k)).
				Str("env", k.CredentialEnv()).
				Msg("Provider credential not configured, provider unavailable")
		}
	}

	return r, nil
}

// View returns the viewport configuration handed to widgets.
func (r *Registry) View() View {
	return r.view
}

// Lookup returns the widget for k and its credential. It fails with a
// *MissingCredentialError before touching the widget when the credential is absent.
// Unknown kinds resolve to the default provider.
func (r *Registry) Lookup(k Kind) (Widget, string, error) {
	if _, ok := r.widgets[k]; !ok {
		k = Default
	}

	cred := r.credentials[k]
	if k.RequiresCredential() && cred == "" {
		return nil, "", &MissingCredentialError{Kind: k}
	}

	return r.widgets[k], cred, nil
}

// Options lists every provider in menu order with its availability.
func (r *Registry) Options() []Option {
	opts := make([]Option, 0, len(Kinds))
	for _, k := range Kinds {
		opts = append(opts, Option{
			Kind:      k,
			Label:     k.Label(),
			Available: !k.RequiresCredential() || r.credentials[k] != "",
		})
	}
	return opts
}
