// Package selection tracks the single focused waypoint.
package selection

import "github.com/woozymasta/waymap/internal/waypoint"

// Selection references at most one waypoint of the loaded collection.
// The zero value selects nothing.
type Selection struct {
	current *waypoint.Waypoint
}

// Select focuses w. It reports false when w is already selected by name,
// in which case nothing changes.
func (s *Selection) Select(w *waypoint.Waypoint) bool {
	if w == nil {
		return s.Clear()
	}
	if s.current != nil && s.current.Name == w.Name {
		return false
	}
	s.current = w
	return true
}

// Clear resets the selection. It reports whether anything was selected.
func (s *Selection) Clear() bool {
	had := s.current != nil
	s.current = nil
	return had
}

// Selected returns the focused waypoint or nil.
func (s Selection) Selected() *waypoint.Waypoint {
	return s.current
}

// Name returns the focused waypoint name or "".
func (s Selection) Name() string {
	if s.current == nil {
		return ""
	}
	return s.current.Name
}

// Is reports whether w matches the selection by name.
func (s Selection) Is(w waypoint.Waypoint) bool {
	return s.current != nil && s.current.Name == w.Name
}

// Resolve finds name in locations and returns a reference into the slice.
// Duplicate names resolve to the last entry.
func Resolve(locations []waypoint.Waypoint, name string) *waypoint.Waypoint {
	if name == "" {
		return nil
	}
	for i := len(locations) - 1; i >= 0; i-- {
		if locations[i].Name == name {
			return &locations[i]
		}
	}
	return nil
}
