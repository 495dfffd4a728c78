package sheet

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
)

// junkHeaderPrefix marks the placeholder header row some exports carry
// ("Unnamed: 0,Unnamed: 1,..."); the real header is the row after it.
const junkHeaderPrefix = "unnamed: 0"

// ReadCSV parses a delimited export into a Table. Input bytes are decoded
// as Latin-1, which tolerates arbitrary non-UTF-8 content; mojibake
// introduced for genuinely UTF-8 files is repaired downstream. Header cells
// are trimmed, ragged rows are allowed, and a spurious placeholder header
// row is skipped in favor of the row beneath it.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := parseCSV(charmap.ISO8859_1.NewDecoder().Reader(f))
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: parse %s", path)
	}
	return t, nil
}

func parseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	var t Table
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "read row")
		}

		if t.Header == nil {
			if isJunkHeader(record) {
				continue
			}
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
			t.Header = record
			continue
		}

		t.Rows = append(t.Rows, record)
	}

	if t.Header == nil {
		return nil, eris.New("empty file")
	}
	return &t, nil
}

func isJunkHeader(record []string) bool {
	return len(record) > 0 && strings.HasPrefix(strings.ToLower(strings.TrimSpace(record[0])), junkHeaderPrefix)
}

// WriteCSV writes the table as UTF-8 CSV, replacing any existing file whole.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sheet: create %s", path)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close() //nolint:errcheck,gosec
		return eris.Wrap(err, "sheet: write header")
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			f.Close() //nolint:errcheck,gosec
			return eris.Wrap(err, "sheet: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck,gosec
		return eris.Wrap(err, "sheet: flush")
	}

	return eris.Wrapf(f.Close(), "sheet: close %s", path)
}
