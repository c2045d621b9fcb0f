package provider

import (
	"html/template"
	"io"

	"github.com/woozymasta/waymap/internal/config"
	"github.com/woozymasta/waymap/internal/waypoint"
)

const (
	mapboxStyle       = "mapbox://styles/mapbox/outdoors-v12"
	mapboxMarkerColor = "#e74c3c"
	googleMapType     = "terrain"
)

// sceneData is the JSON payload read by the widget bootstrap scripts.
type sceneData struct {
	Selected   *waypoint.Waypoint  `json:"selected"`
	Credential string              `json:"credential,omitempty"`
	Locations  []waypoint.Waypoint `json:"locations"`
	Center     config.LatLng       `json:"center"`
	Zoom       int                 `json:"zoom"`
	FocusZoom  int                 `json:"focus_zoom"`
	FlyMillis  int64               `json:"fly_ms"`
	FlySeconds float64             `json:"fly_seconds"`
}

func newSceneData(scene Scene, withCredential bool) sceneData {
	locations := scene.Locations
	if locations == nil {
		locations = []waypoint.Waypoint{}
	}

	data := sceneData{
		Selected:   scene.Selected,
		Locations:  locations,
		Center:     scene.View.Center,
		Zoom:       scene.View.Zoom,
		FocusZoom:  scene.View.FocusZoom,
		FlyMillis:  scene.View.FlyDuration.Milliseconds(),
		FlySeconds: scene.View.FlyDuration.Seconds(),
	}
	if withCredential {
		data.Credential = scene.Credential
	}
	return data
}

// leafletWidget draws OpenStreetMap tiles through Leaflet.
type leafletWidget struct {
	tpl *template.Template
}

func (leafletWidget) Kind() Kind { return Leaflet }

func (l leafletWidget) Render(w io.Writer, scene Scene) error {
	return l.tpl.ExecuteTemplate(w, string(Leaflet), struct {
		Data sceneData
	}{
		Data: newSceneData(scene, false),
	})
}

// mapboxWidget draws Mapbox GL vector maps.
type mapboxWidget struct {
	tpl *template.Template
}

func (mapboxWidget) Kind() Kind { return Mapbox }

func (m mapboxWidget) Render(w io.Writer, scene Scene) error {
	return m.tpl.ExecuteTemplate(w, string(Mapbox), struct {
		Style       string
		MarkerColor string
		Data        sceneData
	}{
		Style:       mapboxStyle,
		MarkerColor: mapboxMarkerColor,
		Data:        newSceneData(scene, true),
	})
}

// googleWidget draws Google Maps terrain.
// The key goes into the script URL, not the scene payload.
type googleWidget struct {
	tpl *template.Template
}

func (googleWidget) Kind() Kind { return Google }

func (g googleWidget) Render(w io.Writer, scene Scene) error {
	return g.tpl.ExecuteTemplate(w, string(Google), struct {
		MapType    string
		Credential string
		Data       sceneData
	}{
		MapType:    googleMapType,
		Credential: scene.Credential,
		Data:       newSceneData(scene, false),
	})
}
