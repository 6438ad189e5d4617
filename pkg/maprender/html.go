package maprender

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed map.html.tmpl
var mapTemplateSource string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateSource))

func (m *Map) GeoJSON() ([]byte, error) {
	return m.Features.MarshalJSON()
}

// HTML writes a standalone Leaflet page showing the map
func (m *Map) HTML(w io.Writer) error {
	data, err := m.GeoJSON()
	if err != nil {
		return err
	}

	return mapTemplate.Execute(w, struct {
		Lat     float64
		Lon     float64
		Zoom    int
		GeoJSON template.JS
	}{
		Lat:     m.Center.Lat(),
		Lon:     m.Center.Lon(),
		Zoom:    m.Zoom,
		GeoJSON: template.JS(data),
	})
}
