// Package render produces the map page consumed by the browser: a Leaflet
// map with one marker per located record, colored by the enrichment
// confidence classification, plus a categorical legend.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/petitlyon/cartomat/internal/enrich"
	"github.com/petitlyon/cartomat/internal/models"
)

// Marker colors per classification.
const (
	colorConfident = "#2a81cb"
	colorUncertain = "#cb2b3e"
)

type marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
	Color string  `json:"color"`
}

type legendEntry struct {
	Label string
	Color string
}

type pageData struct {
	CenterLat float64
	CenterLng float64
	Markers   template.JS
	Legend    []legendEntry
}

var pageTemplate = template.Must(template.New("map").Parse(`<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>cartomat</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body, #map { height: 100%; margin: 0; }
    .maplegend {
      position: absolute; z-index: 9999; background: #fff;
      border: 2px solid #bbb; border-radius: 5px; padding: 10px;
      font: 12px sans-serif; right: 10px; bottom: 20px;
    }
    .maplegend .legend-title { font-weight: bold; margin-bottom: 5px; }
    .maplegend ul { margin: 0; padding: 0; list-style: none; }
    .maplegend li span {
      display: inline-block; height: 12px; width: 24px; margin-right: 5px;
    }
  </style>
</head>
<body>
<div id="map"></div>
<div class="maplegend">
  <div class="legend-title">Géolocalisation</div>
  <ul>
{{- range .Legend}}
    <li><span style="background:{{.Color}}"></span>{{.Label}}</li>
{{- end}}
  </ul>
</div>
<script>
  var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLng}}], 13);
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 19,
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);
  var markers = {{.Markers}};
  markers.forEach(function (m) {
    L.circleMarker([m.lat, m.lng], {
      radius: 8, color: m.color, fillColor: m.color, fillOpacity: 0.8
    }).bindPopup(m.popup).addTo(map);
  });
</script>
</body>
</html>
`))

// Map writes the map page for an enriched table. Records without a primary
// location are skipped; they have nothing to draw.
func Map(w io.Writer, records []models.Record, center models.Coordinates, radiusKm float64) error {
	markers := make([]marker, 0, len(records))
	for _, rec := range records {
		if rec.Location == nil {
			continue
		}
		color := colorConfident
		if enrich.Classify(rec, radiusKm) == models.ClassUncertain {
			color = colorUncertain
		}
		markers = append(markers, marker{
			Lat:   rec.Location.Latitude,
			Lng:   rec.Location.Longitude,
			Popup: fmt.Sprintf("<b>%s %s</b><br>%s", rec.NomDisplay, rec.PrenomDisplay, rec.Tel),
			Color: color,
		})
	}

	encoded, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("failed to encode markers: %w", err)
	}

	data := pageData{
		CenterLat: center.Latitude,
		CenterLng: center.Longitude,
		Markers:   template.JS(encoded), //nolint:gosec // marker text is display-safe escaped upstream
		Legend: []legendEntry{
			{Label: "Géolocalisation fiable", Color: colorConfident},
			{Label: "Géolocalisation incertaine", Color: colorUncertain},
		},
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render map page: %w", err)
	}
	return nil
}
