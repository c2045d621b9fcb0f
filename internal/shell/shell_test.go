package shell

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/waymap/internal/config"
	"github.com/woozymasta/waymap/internal/provider"
	"github.com/woozymasta/waymap/internal/store"
	"github.com/woozymasta/waymap/internal/waypoint"
)

type loaderFunc func(ctx context.Context) ([]waypoint.Waypoint, error)

func (f loaderFunc) Load(ctx context.Context) ([]waypoint.Waypoint, error) { return f(ctx) }

func cup() []waypoint.Waypoint {
	return []waypoint.Waypoint{
		{Name: "CP1", Latitude: -36.10, Longitude: 147.80, Description: "Start line", Altitude: 600},
		{Name: "CP2", Latitude: -36.20, Longitude: 148.00, Description: "Turnaround", Altitude: 550},
	}
}

func newShell(t *testing.T, loader store.Loader, creds config.Credentials, minify bool) *Shell {
	t.Helper()

	reg, err := provider.NewRegistry(creds, provider.View{
		Center:      config.DefaultCenter,
		Zoom:        config.DefaultZoom,
		FocusZoom:   config.DefaultFocusZoom,
		FlyDuration: config.DefaultFlyDuration,
	})
	require.NoError(t, err)

	st := store.New(loader)
	sh, err := New(st, reg, Options{Title: "Corryong Cup", Minify: minify})
	require.NoError(t, err)
	t.Cleanup(sh.Unmount)

	if loader != nil {
		sh.Mount(context.Background())
		select {
		case <-st.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("store did not settle")
		}
	}
	return sh
}

func readyShell(t *testing.T, creds config.Credentials) *Shell {
	t.Helper()
	return newShell(t, loaderFunc(func(context.Context) ([]waypoint.Waypoint, error) {
		return cup(), nil
	}), creds, false)
}

func renderPage(t *testing.T, sh *Shell, q string) string {
	t.Helper()

	values, err := url.ParseQuery(q)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, sh.Render(&buf, sh.State(values)))
	return buf.String()
}

func TestPhaseOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, PhaseLoading, PhaseOf(store.State{Loading: true}))
	require.Equal(t, PhaseReady, PhaseOf(store.State{}))
	require.Equal(t, PhaseFailed, PhaseOf(store.State{Error: "boom"}))
	require.Equal(t, "failed", PhaseFailed.String())
}

func TestRenderLoading(t *testing.T) {
	t.Parallel()

	sh := newShell(t, nil, config.Credentials{}, false)
	require.Equal(t, PhaseLoading, sh.Phase())

	out := renderPage(t, sh, "")
	require.Contains(t, out, "Loading waypoints...")
	require.Contains(t, out, `http-equiv="refresh"`)
	require.NotContains(t, out, `id="map"`)
	require.NotContains(t, out, `class="location-list"`)
}

func TestRenderFailed(t *testing.T) {
	t.Parallel()

	sh := newShell(t, loaderFunc(func(context.Context) ([]waypoint.Waypoint, error) {
		return nil, errors.New("waypoint source: status 404")
	}), config.Credentials{}, false)
	require.Equal(t, PhaseFailed, sh.Phase())

	out := renderPage(t, sh, "list=1")
	require.Contains(t, out, "Failed to load locations: waypoint source: status 404")
	require.NotContains(t, out, `id="map"`)
	require.NotContains(t, out, `class="location-item`)
}

func TestRenderReadyDefault(t *testing.T) {
	t.Parallel()

	sh := readyShell(t, config.Credentials{})
	require.Equal(t, PhaseReady, sh.Phase())

	out := renderPage(t, sh, "")
	require.Contains(t, out, "<h1 class=\"header-title\">Corryong Cup</h1>")
	require.Contains(t, out, `data-provider="leaflet"`)
	require.Contains(t, out, `aria-pressed="false"`)
	require.Contains(t, out, `<div class="location-list" data-selected="" hidden>`)
	require.Contains(t, out, "Leaflet (OpenStreetMap)")
	require.Contains(t, out, "Google Maps")
	require.NotContains(t, out, `class="location-item selected"`)
}

func TestRenderSelectedWaypoint(t *testing.T) {
	t.Parallel()

	sh := readyShell(t, config.Credentials{})

	out := renderPage(t, sh, "list=1&selected=CP2")
	require.Contains(t, out, `aria-pressed="true"`)
	require.Contains(t, out, `<div class="location-list" data-selected="CP2">`)
	require.Contains(t, out, `"selected":{"name":"CP2","description":"Turnaround","latitude":-36.2,"longitude":148`)
	require.Contains(t, out, `<li class="location-item selected" data-name="CP2">`)
	require.Contains(t, out, `<li class="location-item" data-name="CP1">`)
	require.Equal(t, 1, strings.Count(out, `class="location-item selected"`))
	require.Contains(t, out, "-36.2000, 148.0000")
	require.Contains(t, out, "-36.1000, 147.8000")
}

func TestRenderSeedsClientSelection(t *testing.T) {
	t.Parallel()

	sh := readyShell(t, config.Credentials{})

	out := renderPage(t, sh, "selected=CP2")
	require.Contains(t, out, `data-selected="CP2" hidden`)
	require.Contains(t, out, `"selected":{"name":"CP2"`)
	require.Contains(t, out, "w.name === selectedName()")

	out = renderPage(t, sh, "selected=CP9")
	require.Contains(t, out, `data-selected="" hidden`)
	require.Contains(t, out, `"selected":null`)
}

func TestRenderMissingCredentialKeepsList(t *testing.T) {
	t.Parallel()

	sh := readyShell(t, config.Credentials{})

	out := renderPage(t, sh, "provider=mapbox&list=1")
	require.Contains(t, out, `class="api-key-notice"`)
	require.Contains(t, out, "MAPBOX_TOKEN")
	require.NotContains(t, out, `id="map"`)
	require.Contains(t, out, `data-name="CP1"`)
	require.Contains(t, out, `data-name="CP2"`)
}

func TestRenderProviderSwitchKeepsSelection(t *testing.T) {
	t.Parallel()

	sh := readyShell(t, config.Credentials{Mapbox: "pk.token"})

	state := sh.State(url.Values{"selected": {"CP2"}})
	switched := state.WithProvider(provider.Mapbox)
	require.Equal(t, "CP2", switched.Selection.Name())

	var buf bytes.Buffer
	require.NoError(t, sh.Render(&buf, switched))
	out := buf.String()
	require.Contains(t, out, `data-provider="mapbox"`)
	require.Contains(t, out, `"selected":{"name":"CP2"`)
}

func TestRenderEmptyCollection(t *testing.T) {
	t.Parallel()

	sh := newShell(t, loaderFunc(func(context.Context) ([]waypoint.Waypoint, error) {
		return []waypoint.Waypoint{}, nil
	}), config.Credentials{}, false)
	require.Equal(t, PhaseReady, sh.Phase())

	out := renderPage(t, sh, "list=1&selected=CP1")
	require.Contains(t, out, `"locations":[]`)
	require.Contains(t, out, `"selected":null`)
	require.NotContains(t, out, `class="location-item`)
}

func TestRenderMinified(t *testing.T) {
	t.Parallel()

	sh := newShell(t, loaderFunc(func(context.Context) ([]waypoint.Waypoint, error) {
		return cup(), nil
	}), config.Credentials{}, true)

	out := renderPage(t, sh, "list=1&selected=CP1")
	require.Contains(t, out, "Corryong Cup")
	require.Contains(t, out, "CP2")
	require.Contains(t, out, "Turnaround")
	require.NotContains(t, out, "\n  <header")
}

func TestRenderEscapesWaypointText(t *testing.T) {
	t.Parallel()

	sh := newShell(t, loaderFunc(func(context.Context) ([]waypoint.Waypoint, error) {
		return []waypoint.Waypoint{{Name: "<img src=x>", Latitude: 1, Longitude: 2}}, nil
	}), config.Credentials{}, false)

	out := renderPage(t, sh, "list=1")
	require.NotContains(t, out, "<img src=x>")
	require.Contains(t, out, "&lt;img src=x&gt;")
}
