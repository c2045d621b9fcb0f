package shell

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/waymap/internal/provider"
)

func TestDefaultState(t *testing.T) {
	t.Parallel()

	s := DefaultState()
	require.Equal(t, provider.Leaflet, s.Provider)
	require.False(t, s.ShowList)
	require.Nil(t, s.Selection.Selected())
	require.Equal(t, "/", s.URL())
}

func TestParseState(t *testing.T) {
	t.Parallel()

	locations := cup()
	s := ParseState(url.Values{
		ParamProvider: {"google"},
		ParamList:     {"1"},
		ParamSelected: {"CP2"},
	}, locations)

	require.Equal(t, provider.Google, s.Provider)
	require.True(t, s.ShowList)
	require.Same(t, &locations[1], s.Selection.Selected())
}

func TestParseStateFallbacks(t *testing.T) {
	t.Parallel()

	s := ParseState(url.Values{
		ParamProvider: {"bing"},
		ParamList:     {"yes"},
		ParamSelected: {"CP9"},
	}, cup())

	require.Equal(t, provider.Default, s.Provider)
	require.False(t, s.ShowList)
	require.Nil(t, s.Selection.Selected())
}

func TestToggleKeepsSelectionAndProvider(t *testing.T) {
	t.Parallel()

	locations := cup()
	s := DefaultState().WithProvider(provider.Mapbox).Focused(&locations[0])

	toggled := s.Toggled()
	require.True(t, toggled.ShowList)
	require.Equal(t, provider.Mapbox, toggled.Provider)
	require.Equal(t, "CP1", toggled.Selection.Name())

	back := toggled.Toggled()
	require.Equal(t, s, back)
}

func TestUpdatesDoNotMutateReceiver(t *testing.T) {
	t.Parallel()

	locations := cup()
	s := DefaultState()
	_ = s.Focused(&locations[1])
	_ = s.WithProvider(provider.Google)
	_ = s.Toggled()

	require.Equal(t, DefaultState(), s)
}

func TestFocusSameWaypointTwice(t *testing.T) {
	t.Parallel()

	locations := cup()
	once := DefaultState().Focused(&locations[1])
	twice := once.Focused(&locations[1])
	require.Equal(t, once, twice)
	require.Equal(t, "CP2", twice.Selection.Name())
}

func TestQueryRoundTrip(t *testing.T) {
	t.Parallel()

	locations := cup()
	s := DefaultState().WithProvider(provider.Mapbox).WithList(true).Focused(&locations[0])

	require.Equal(t, "/?list=1&provider=mapbox&selected=CP1", s.URL())
	require.Equal(t, s, ParseState(s.Query(), locations))
}
