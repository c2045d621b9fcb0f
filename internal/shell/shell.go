// Package shell composes the waypoint store, map surface and list panel
// into the single page served to the browser.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/woozymasta/waymap/assets"
	"github.com/woozymasta/waymap/internal/provider"
	"github.com/woozymasta/waymap/internal/store"
	"github.com/woozymasta/waymap/internal/surface"
)

// Phase is the page lifecycle derived from the store.
type Phase int

// Page phases.
const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "loading"
	}
}

// PhaseOf maps a store observation to a page phase.
func PhaseOf(st store.State) Phase {
	switch {
	case st.Loading:
		return PhaseLoading
	case st.Error != "":
		return PhaseFailed
	default:
		return PhaseReady
	}
}

// Options configures the shell.
type Options struct {
	Title  string
	Minify bool
}

// Shell owns the page composition. It holds no per-viewer state: callers
// pass a State to every render.
type Shell struct {
	store    *store.Store
	surface  *surface.Surface
	registry *provider.Registry
	tpl      *template.Template
	min      *minify.M
	style    template.CSS
	script   template.JS
	title    string
	minify   bool
}

// New builds a shell over st and registry, minifying the embedded styles
// and client script once.
func New(st *store.Store, registry *provider.Registry, opts Options) (*Shell, error) {
	tpl, err := template.New("index").Parse(string(assets.Index))
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)

	style, script := string(assets.Style), string(assets.Script)
	if opts.Minify {
		if style, err = m.String("text/css", style); err != nil {
			return nil, fmt.Errorf("minify style: %w", err)
		}
		if script, err = m.String("text/javascript", script); err != nil {
			return nil, fmt.Errorf("minify script: %w", err)
		}
	}

	return &Shell{
		store:    st,
		surface:  surface.New(registry),
		registry: registry,
		tpl:      tpl,
		min:      m,
		style:    template.CSS(style),
		script:   template.JS(script),
		title:    opts.Title,
		minify:   opts.Minify,
	}, nil
}

// Mount starts the one-shot waypoint load.
func (sh *Shell) Mount(ctx context.Context) {
	sh.store.Start(ctx)
}

// Unmount tears the shell down; a load still in flight is discarded.
func (sh *Shell) Unmount() {
	sh.store.Close()
}

// Phase returns the current page phase.
func (sh *Shell) Phase() Phase {
	return PhaseOf(sh.store.Snapshot())
}

// State decodes the page state from query parameters against the
// currently loaded collection.
func (sh *Shell) State(q url.Values) State {
	return ParseState(q, sh.store.Snapshot().Locations)
}

type menuOption struct {
	Label     string
	URL       string
	Checked   bool
	Available bool
}

type listItem struct {
	Name     string
	Coords   string
	URL      string
	Selected bool
}

type page struct {
	Title     string
	Error     string
	ToggleURL string
	Style     template.CSS
	Script    template.JS
	Map       surface.Rendered
	Providers []menuOption
	Items     []listItem
	State     State
	Loading   bool
	Failed    bool
}

// Render writes the page for state.
func (sh *Shell) Render(w io.Writer, state State) error {
	snap := sh.store.Snapshot()
	phase := PhaseOf(snap)

	p := page{
		Title:     sh.title,
		Style:     sh.style,
		Script:    sh.script,
		State:     state,
		ToggleURL: state.Toggled().URL(),
		Loading:   phase == PhaseLoading,
		Failed:    phase == PhaseFailed,
		Error:     snap.Error,
	}

	for _, opt := range sh.registry.Options() {
		p.Providers = append(p.Providers, menuOption{
			Label:     opt.Label,
			URL:       state.WithProvider(opt.Kind).URL(),
			Checked:   opt.Kind == state.Provider,
			Available: opt.Available,
		})
	}

	if phase == PhaseReady {
		rendered, err := sh.surface.Render(state.Provider, snap.Locations, state.Selection.Selected())
		if err != nil {
			return fmt.Errorf("render map surface: %w", err)
		}
		p.Map = rendered

		p.Items = make([]listItem, 0, len(snap.Locations))
		for i := range snap.Locations {
			loc := &snap.Locations[i]
			p.Items = append(p.Items, listItem{
				Name:     loc.Name,
				Coords:   fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude),
				URL:      state.WithList(true).Focused(loc).URL(),
				Selected: state.Selection.Is(*loc),
			})
		}
	}

	if !sh.minify {
		return sh.tpl.Execute(w, p)
	}

	var buf bytes.Buffer
	if err := sh.tpl.Execute(&buf, p); err != nil {
		return err
	}
	if err := sh.min.Minify("text/html", w, &buf); err != nil {
		log.Warn().Err(err).Msg("Failed to minify page")
		return err
	}
	return nil
}
