// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/waymap/internal/geo"
	"github.com/woozymasta/waymap/internal/shell"
)

const etagCap = 64

// HandleIndex serves the page for the state encoded in the query string.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	state := s.Shell.State(r.URL.Query())

	var buf bytes.Buffer
	if err := s.Shell.Render(&buf, state); err != nil {
		log.Error().Err(err).Str("provider", string(state.Provider)).Msg("Failed to render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// HandleWaypoints serves the loaded collection as JSON.
func (s *ServerContext) HandleWaypoints(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Snapshot()
	switch shell.PhaseOf(snap) {
	case shell.PhaseLoading:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	case shell.PhaseFailed:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": snap.Error})
	default:
		writeJSON(w, http.StatusOK, snap.Locations)
	}
}

// HandleGeoJSON serves the loaded collection as a GeoJSON feature collection.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Snapshot()
	if shell.PhaseOf(snap) != shell.PhaseReady {
		s.HandleWaypoints(w, r)
		return
	}

	fc, skipped := geo.FromWaypoints(snap.Locations)
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("Waypoints without coordinates left out of GeoJSON")
	}

	w.Header().Set("Content-Type", "application/geo+json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(fc)
}

// HandleProviders serves the provider selector options.
func (s *ServerContext) HandleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.Options())
}

// HandleStatus reports the load phase.
func (s *ServerContext) HandleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Snapshot()
	writeJSON(w, http.StatusOK, struct {
		Phase string `json:"phase"`
		Error string `json:"error,omitempty"`
		Count int    `json:"count"`
	}{
		Phase: shell.PhaseOf(snap).String(),
		Error: snap.Error,
		Count: len(snap.Locations),
	})
}

// HandleSource serves the raw waypoint file when it is local.
func (s *ServerContext) HandleSource(w http.ResponseWriter, r *http.Request) {
	if s.Reader.Remote() {
		http.Redirect(w, r, s.Reader.Source, http.StatusFound)
		return
	}
	if !s.serveFile(w, r, s.Reader.Source, "text/csv; charset=utf-8") {
		http.NotFound(w, r)
	}
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to write JSON response")
	}
}
