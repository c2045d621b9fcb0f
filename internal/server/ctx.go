package server

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/waymap/assets"
	"github.com/woozymasta/waymap/internal/provider"
	"github.com/woozymasta/waymap/internal/shell"
	"github.com/woozymasta/waymap/internal/store"
	"github.com/woozymasta/waymap/internal/waypoint"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Shell    *shell.Shell
	Store    *store.Store
	Registry *provider.Registry
	Reader   *waypoint.Reader
	Favicon  []byte
}

// NewServerContext wires the handlers to the shell and its collaborators.
func NewServerContext(sh *shell.Shell, st *store.Store, reg *provider.Registry, reader *waypoint.Reader) *ServerContext {
	available := 0
	for _, opt := range reg.Options() {
		if opt.Available {
			available++
		}
	}

	log.Info().
		Str("source", reader.Source).
		Bool("remote", reader.Remote()).
		Int("providers_available", available).
		Msg("Server context initialized")

	return &ServerContext{
		Shell:    sh,
		Store:    st,
		Registry: reg,
		Reader:   reader,
		Favicon:  assets.Favicon,
	}
}
