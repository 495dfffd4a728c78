package mapgen

import (
	"encoding/json"
	"html/template"
	"io"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/sells-group/tenant-mapper/internal/tenant"
)

// Marker is one resolved site on the map.
type Marker struct {
	Tenant  string  `json:"tenant"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Layer is a toggleable overlay holding one tenant's markers.
type Layer struct {
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Markers []Marker `json:"markers"`
}

// MapData is everything the HTML template needs.
type MapData struct {
	Layers    []Layer
	CenterLat float64
	CenterLon float64
	Zoom      int
	TileURL   string
}

// BuildLayers groups resolved rows by tenant, sorted ascending by name,
// assigning each group its palette color by sorted position. Unresolved
// rows are ignored.
func BuildLayers(rows []tenant.Enriched, style Style) []Layer {
	byTenant := make(map[string][]Marker)
	for _, row := range rows {
		if !row.Result.Matched {
			continue
		}
		byTenant[row.Tenant] = append(byTenant[row.Tenant], Marker{
			Tenant:  row.Tenant,
			Address: row.Address,
			City:    row.City,
			State:   row.State,
			Lat:     row.Result.Latitude,
			Lon:     row.Result.Longitude,
		})
	}

	names := make([]string, 0, len(byTenant))
	for name := range byTenant {
		names = append(names, name)
	}
	sort.Strings(names)

	layers := make([]Layer, len(names))
	for i, name := range names {
		layers[i] = Layer{
			Name:    name,
			Color:   colorAt(style.Palette, i),
			Markers: byTenant[name],
		}
	}
	return layers
}

// Build assembles map data from enriched rows. At least one resolved row
// is required; there is nothing to center an empty map on.
func Build(rows []tenant.Enriched, style Style) (*MapData, error) {
	layers := BuildLayers(rows, style)
	if len(layers) == 0 {
		return nil, eris.New("mapgen: no resolved rows to map")
	}

	// Mean coordinate of every resolved marker.
	var flat []float64
	for _, layer := range layers {
		for _, m := range layer.Markers {
			flat = append(flat, m.Lon, m.Lat)
		}
	}
	centroid := xy.PointsCentroidFlat(geom.XY, flat)

	zoom := style.Zoom
	if zoom <= 0 {
		zoom = defaultZoom
	}
	tiles := style.TileURL
	if tiles == "" {
		tiles = defaultTileURL
	}

	return &MapData{
		Layers:    layers,
		CenterLat: centroid[1],
		CenterLon: centroid[0],
		Zoom:      zoom,
		TileURL:   tiles,
	}, nil
}

// Render writes the self-contained HTML document.
func Render(w io.Writer, data *MapData) error {
	payload, err := json.Marshal(data.Layers)
	if err != nil {
		return eris.Wrap(err, "mapgen: marshal layers")
	}

	ctx := struct {
		Layers    template.JS
		CenterLat float64
		CenterLon float64
		Zoom      int
		TileURL   string
	}{
		Layers:    template.JS(payload), //nolint:gosec // marshaled from our own structs
		CenterLat: data.CenterLat,
		CenterLon: data.CenterLon,
		Zoom:      data.Zoom,
		TileURL:   data.TileURL,
	}

	return eris.Wrap(mapTemplate.Execute(w, ctx), "mapgen: execute template")
}

// WriteHTML builds and renders the map to a file, replacing it whole.
func WriteHTML(path string, rows []tenant.Enriched, style Style) error {
	data, err := Build(rows, style)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "mapgen: create %s", path)
	}
	if err := Render(f, data); err != nil {
		f.Close() //nolint:errcheck,gosec
		return err
	}
	return eris.Wrapf(f.Close(), "mapgen: close %s", path)
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Tenant Locations</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var layers = {{.Layers}};

var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('{{.TileURL}}', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var overlays = {};
layers.forEach(function (layer) {
  var group = L.layerGroup();
  layer.markers.forEach(function (m) {
    var popup = '<b>Tenant:</b> ' + m.tenant + '<br>' +
      '<b>Address:</b> ' + m.address + ', ' + m.city + ', ' + m.state;
    L.circleMarker([m.lat, m.lon], {
      radius: 7,
      color: layer.color,
      fillColor: layer.color,
      fillOpacity: 0.85
    }).bindPopup(popup, {maxWidth: 300}).bindTooltip(m.tenant).addTo(group);
  });
  group.addTo(map);
  overlays[layer.name] = group;
});

L.control.layers(null, overlays, {collapsed: false}).addTo(map);
</script>
</body>
</html>
`))
