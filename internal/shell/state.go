package shell

import (
	"net/url"

	"github.com/woozymasta/waymap/internal/provider"
	"github.com/woozymasta/waymap/internal/selection"
	"github.com/woozymasta/waymap/internal/waypoint"
)

// Query parameters carrying the page state.
const (
	ParamProvider = "provider"
	ParamList     = "list"
	ParamSelected = "selected"
)

// State is the top-level UI state: provider choice, list panel visibility
// and the focused waypoint. Update functions return a modified copy.
type State struct {
	Selection selection.Selection
	Provider  provider.Kind
	ShowList  bool
}

// DefaultState selects the default provider with the list hidden and
// nothing focused.
func DefaultState() State {
	return State{Provider: provider.Default}
}

// ParseState decodes q, resolving the selected name against locations.
// Unknown providers fall back to the default; unknown names select nothing.
func ParseState(q url.Values, locations []waypoint.Waypoint) State {
	s := DefaultState()

	if k, ok := provider.ParseKind(q.Get(ParamProvider)); ok {
		s.Provider = k
	}
	s.ShowList = q.Get(ParamList) == "1"
	s.Selection.Select(selection.Resolve(locations, q.Get(ParamSelected)))

	return s
}

// WithProvider switches the provider, keeping selection and panel.
func (s State) WithProvider(k provider.Kind) State {
	s.Provider = k
	return s
}

// Toggled flips list panel visibility.
func (s State) Toggled() State {
	s.ShowList = !s.ShowList
	return s
}

// WithList sets list panel visibility.
func (s State) WithList(show bool) State {
	s.ShowList = show
	return s
}

// Focused selects w, or clears the selection when w is nil.
func (s State) Focused(w *waypoint.Waypoint) State {
	s.Selection.Select(w)
	return s
}

// Query encodes the state, omitting default values.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Provider != "" && s.Provider != provider.Default {
		q.Set(ParamProvider, string(s.Provider))
	}
	if s.ShowList {
		q.Set(ParamList, "1")
	}
	if name := s.Selection.Name(); name != "" {
		q.Set(ParamSelected, name)
	}
	return q
}

// URL is the page address restoring this state.
func (s State) URL() string {
	q := s.Query()
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
