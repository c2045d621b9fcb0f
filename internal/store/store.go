// Package store holds the waypoint collection loaded once per session.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/waymap/internal/waypoint"
)

// Loader fetches and decodes a waypoint collection.
type Loader interface {
	Load(ctx context.Context) ([]waypoint.Waypoint, error)
}

// State is an observation of the store.
type State struct {
	Locations []waypoint.Waypoint
	Error     string
	Loading   bool
}

// Ready reports whether the load succeeded.
func (s State) Ready() bool {
	return !s.Loading && s.Error == ""
}

// Failed reports whether the load failed.
func (s State) Failed() bool {
	return !s.Loading && s.Error != ""
}

// Store adapts a one-shot asynchronous load into observable state.
// It moves from loading to exactly one terminal state and never back.
type Store struct {
	loader    Loader
	done      chan struct{}
	locations []waypoint.Waypoint
	err       string
	mu        sync.RWMutex
	start     sync.Once
	loading   bool
	closed    bool
}

// New returns a store in the loading state.
func New(loader Loader) *Store {
	return &Store{
		loader:    loader,
		done:      make(chan struct{}),
		locations: []waypoint.Waypoint{},
		loading:   true,
	}
}

// Start spawns the load. Repeated calls are no-ops.
func (s *Store) Start(ctx context.Context) {
	s.start.Do(func() {
		log.Info().Msg("Loading waypoints")
		go s.run(ctx)
	})
}

func (s *Store) run(ctx context.Context) {
	locations, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		log.Debug().Msg("Store closed before load settled, result dropped")
		return
	}

	s.loading = false
	if err != nil {
		s.err = err.Error()
		log.Error().Err(err).Msg("Failed to load waypoints")
	} else {
		if locations != nil {
			s.locations = locations
		}
		log.Info().Int("count", len(s.locations)).Msg("Waypoints loaded")
	}
	close(s.done)
}

// Snapshot returns the current state. The returned slice must not be modified.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Loading:   s.loading,
		Locations: s.locations,
		Error:     s.err,
	}
}

// Done is closed once the store reaches a terminal state.
// It is never closed if the store is closed first.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Close tears the store down; a load settling afterwards is discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
