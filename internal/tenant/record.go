// Package tenant models tenant-location records from spreadsheet exports
// and the dedupe/enrichment operations over them.
package tenant

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/tenant-mapper/internal/sheet"
	"github.com/sells-group/tenant-mapper/internal/textutil"
	"github.com/sells-group/tenant-mapper/pkg/geocode"
)

// RequiredColumns are the exact header names the enrichment pipeline needs.
var RequiredColumns = []string{"Tenant", "Location", "Address", "City", "State"}

// Record is one tenant location. Display fields are kept as imported
// (mojibake-repaired, never simplified); CleanAddress and FullAddress are
// derived for geocoding only.
type Record struct {
	Tenant   string
	Location string
	Address  string
	City     string
	State    string

	// CleanAddress is the suite-stripped address used to build the
	// geocode query. It never replaces Address.
	CleanAddress string

	// FullAddress is the geocode query and cache key:
	// "<clean address>, <city>, <state>, USA".
	FullAddress string
}

// Enriched pairs a record with its geocoding outcome. Every input row
// produces exactly one Enriched, which lands in exactly one of the
// resolved/failed partitions.
type Enriched struct {
	Record
	Result geocode.Result
}

// DedupeKey derives the duplicate-site key from an address and state:
// both normalized, joined with a pipe. Records with equal keys are the
// same physical site.
func DedupeKey(address, state string) string {
	return textutil.Normalize(address) + "|" + textutil.Normalize(state)
}

// FromTable extracts records from an export table. Each required column
// must be present; a missing column is a fatal configuration error naming
// the columns actually available. Field values are trimmed and
// mojibake-repaired; the derived geocoding fields are computed here so a
// record is complete on construction.
func FromTable(t *sheet.Table) ([]Record, error) {
	selected, err := t.Select(RequiredColumns...)
	if err != nil {
		return nil, eris.Wrap(err, "tenant: load records")
	}

	records := make([]Record, 0, len(selected.Rows))
	for _, row := range selected.Rows {
		r := Record{
			Tenant:   textutil.RepairMojibake(row[0]),
			Location: textutil.RepairMojibake(row[1]),
			Address:  textutil.RepairMojibake(row[2]),
			City:     textutil.RepairMojibake(row[3]),
			State:    textutil.RepairMojibake(row[4]),
		}
		r.CleanAddress = textutil.SimplifyAddress(r.Address)
		r.FullAddress = r.CleanAddress + ", " + r.City + ", " + r.State + ", USA"
		records = append(records, r)
	}
	return records, nil
}

// Partition splits enriched rows into resolved (both coordinates present)
// and failed, preserving relative order within each partition. The two
// slices are disjoint and together cover the input exactly.
func Partition(rows []Enriched) (resolved, failed []Enriched) {
	for _, row := range rows {
		if row.Result.Matched {
			resolved = append(resolved, row)
		} else {
			failed = append(failed, row)
		}
	}
	return resolved, failed
}
