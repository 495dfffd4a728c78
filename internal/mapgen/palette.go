// Package mapgen renders resolved tenant locations as a self-contained
// interactive Leaflet document with one toggleable overlay per tenant.
package mapgen

// defaultPalette is the fixed marker color rotation, cyclically reused and
// indexed by each tenant group's sorted position.
var defaultPalette = []string{
	"#d63e2a", // red
	"#38aadd", // blue
	"#72b026", // green
	"#d252b9", // purple
	"#f69730", // orange
	"#a23336", // dark red
	"#ff8e7f", // light red
	"#ffcb92", // beige
	"#0067a3", // dark blue
	"#728224", // dark green
	"#436978", // cadet blue
	"#5b396b", // dark purple
	"#fbfbfb", // white
	"#ff91ea", // pink
	"#8adaff", // light blue
	"#bbf970", // light green
	"#575757", // gray
	"#303030", // black
	"#a3a3a3", // light gray
}

// colorAt returns the palette entry for a sorted group index, wrapping
// around when groups outnumber colors.
func colorAt(palette []string, i int) string {
	if len(palette) == 0 {
		palette = defaultPalette
	}
	return palette[i%len(palette)]
}
