package tenant

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/tenant-mapper/internal/sheet"
)

// DedupeTable removes rows that share a normalized Address+State key,
// keeping the first occurrence in input order. The table keeps its full
// column set; only rows are dropped. Returns how many rows were removed.
// Address and State must exist in the header; a missing column is a fatal
// configuration error naming the columns actually available.
func DedupeTable(t *sheet.Table) (int, error) {
	addrIdx := t.ColumnIndex("Address")
	stateIdx := t.ColumnIndex("State")
	if addrIdx < 0 || stateIdx < 0 {
		var missing []string
		if addrIdx < 0 {
			missing = append(missing, "Address")
		}
		if stateIdx < 0 {
			missing = append(missing, "State")
		}
		return 0, eris.Errorf("dedupe: missing required columns %v (available: %v)", missing, t.Columns())
	}

	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := DedupeKey(t.Cell(row, addrIdx), t.Cell(row, stateIdx))
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}

	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed, nil
}
