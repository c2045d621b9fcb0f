package server

import "net/http"

// Routes registers every endpoint and wraps them with request logging.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/waypoints", s.HandleWaypoints)
	mux.HandleFunc("GET /api/waypoints.geojson", s.HandleGeoJSON)
	mux.HandleFunc("GET /api/providers", s.HandleProviders)
	mux.HandleFunc("GET /api/status", s.HandleStatus)
	mux.HandleFunc("GET /waypoints.csv", s.HandleSource)
	mux.HandleFunc("GET /favicon.svg", s.HandleFavicon)
	mux.HandleFunc("GET /", s.HandleIndex)

	return RequestLogger(mux)
}
