package report

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/tenant-mapper/internal/tenant"
)

// shapefileFields are the DBF attributes written per point. DBF field
// names are capped at 10 characters.
func shapefileFields() []shp.Field {
	return []shp.Field{
		shp.StringField("TENANT", 64),
		shp.StringField("ADDRESS", 128),
		shp.StringField("CITY", 64),
		shp.StringField("STATE", 16),
	}
}

// WriteShapefile exports resolved rows as an ESRI point shapefile for GIS
// tools. Rows without coordinates are skipped; call with the resolved
// partition.
func WriteShapefile(path string, rows []tenant.Enriched) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "report: create shapefile %s", path)
	}
	defer w.Close() //nolint:errcheck

	w.SetFields(shapefileFields())

	n := 0
	for _, row := range rows {
		if !row.Result.Matched {
			continue
		}
		w.Write(&shp.Point{X: row.Result.Longitude, Y: row.Result.Latitude})

		for col, val := range []string{row.Tenant, row.Address, row.City, row.State} {
			if err := w.WriteAttribute(n, col, val); err != nil {
				return eris.Wrapf(err, "report: write shapefile attribute row %d", n)
			}
		}
		n++
	}

	return nil
}
