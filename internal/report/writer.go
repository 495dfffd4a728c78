// Package report writes the enrichment pipeline's output artifacts: the
// coordinate-enriched dataset, the failures-only dataset, and the cache
// seed loaded back from a prior run's output.
package report

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tenant-mapper/internal/sheet"
	"github.com/sells-group/tenant-mapper/internal/tenant"
	"github.com/sells-group/tenant-mapper/pkg/geocode"
)

// enrichedHeader is the column layout of the enriched and failure files.
// The derived columns keep the names downstream cache seeding looks for.
var enrichedHeader = []string{
	"Tenant", "Location", "Address", "City", "State",
	"clean_address", "full_address", "lat", "lon",
}

// WriteEnriched writes rows with their coordinates. Rows that failed
// geocoding carry empty lat/lon cells, so the same writer serves both the
// resolved dataset and the failures dataset.
func WriteEnriched(path string, rows []tenant.Enriched) error {
	t := &sheet.Table{Header: append([]string(nil), enrichedHeader...)}
	for _, row := range rows {
		var lat, lon string
		if row.Result.Matched {
			lat = strconv.FormatFloat(row.Result.Latitude, 'f', -1, 64)
			lon = strconv.FormatFloat(row.Result.Longitude, 'f', -1, 64)
		}
		t.Rows = append(t.Rows, []string{
			row.Tenant, row.Location, row.Address, row.City, row.State,
			row.CleanAddress, row.FullAddress, lat, lon,
		})
	}
	return eris.Wrap(sheet.WriteCSV(path, t), "report: write enriched")
}

// LoadEnriched reads a previously written enriched file back into records,
// for map re-rendering and the preview API.
func LoadEnriched(path string) ([]tenant.Enriched, error) {
	t, err := sheet.ReadCSV(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: load enriched")
	}

	selected, err := t.Select(enrichedHeader...)
	if err != nil {
		return nil, eris.Wrap(err, "report: load enriched")
	}

	rows := make([]tenant.Enriched, 0, len(selected.Rows))
	for _, row := range selected.Rows {
		e := tenant.Enriched{
			Record: tenant.Record{
				Tenant:       row[0],
				Location:     row[1],
				Address:      row[2],
				City:         row[3],
				State:        row[4],
				CleanAddress: row[5],
				FullAddress:  row[6],
			},
		}
		lat, latErr := strconv.ParseFloat(row[7], 64)
		lon, lonErr := strconv.ParseFloat(row[8], 64)
		if latErr == nil && lonErr == nil {
			e.Result = geocode.Result{Latitude: lat, Longitude: lon, Matched: true}
		}
		rows = append(rows, e)
	}
	return rows, nil
}

// LoadCacheSeed reads a prior run's enriched output and returns its
// resolved queries keyed by full_address, ready to seed the in-memory
// cache. Rows missing either coordinate are skipped: only resolved entries
// may short-circuit the provider across runs.
func LoadCacheSeed(path string) (map[string]geocode.Result, error) {
	t, err := sheet.ReadCSV(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: load cache seed")
	}

	queryIdx := t.ColumnIndex("full_address")
	latIdx := t.ColumnIndex("lat")
	lonIdx := t.ColumnIndex("lon")
	if queryIdx < 0 || latIdx < 0 || lonIdx < 0 {
		return nil, eris.Errorf("report: %s lacks full_address/lat/lon columns", path)
	}

	seed := make(map[string]geocode.Result)
	for _, row := range t.Rows {
		query := strings.TrimSpace(t.Cell(row, queryIdx))
		if query == "" {
			continue
		}
		lat, latErr := strconv.ParseFloat(t.Cell(row, latIdx), 64)
		lon, lonErr := strconv.ParseFloat(t.Cell(row, lonIdx), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		seed[query] = geocode.Result{Latitude: lat, Longitude: lon, Matched: true}
	}
	return seed, nil
}
