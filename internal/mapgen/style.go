package mapgen

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Style controls map presentation. Zero fields fall back to defaults, so a
// style file may override just the palette or just the zoom.
type Style struct {
	// Zoom is the initial zoom level of the centered map.
	Zoom int `yaml:"zoom"`

	// Palette overrides the marker color rotation.
	Palette []string `yaml:"palette"`

	// TileURL overrides the base tile layer.
	TileURL string `yaml:"tile_url"`
}

const (
	defaultZoom    = 5
	defaultTileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
)

// DefaultStyle returns the stock presentation: zoom 5 over the fixed
// 19-color palette.
func DefaultStyle() Style {
	return Style{
		Zoom:    defaultZoom,
		Palette: append([]string(nil), defaultPalette...),
		TileURL: defaultTileURL,
	}
}

// LoadStyle reads a YAML style file and merges it over the defaults.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, eris.Wrapf(err, "mapgen: read style %s", path)
	}

	s := DefaultStyle()
	var override Style
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Style{}, eris.Wrapf(err, "mapgen: parse style %s", path)
	}

	if override.Zoom > 0 {
		s.Zoom = override.Zoom
	}
	if len(override.Palette) > 0 {
		s.Palette = override.Palette
	}
	if override.TileURL != "" {
		s.TileURL = override.TileURL
	}
	return s, nil
}
