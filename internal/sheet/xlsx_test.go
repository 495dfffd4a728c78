package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Targets")
	require.NoError(t, err)
	for _, row := range rows {
		r := sheet.AddRow()
		for _, val := range row {
			r.AddCell().Value = val
		}
	}

	path := filepath.Join(t.TempDir(), "targets.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"Tenant", "Address"},
		{"Acme", "1 Main St"},
	})

	tab, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tenant", "Address"}, tab.Header)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, []string{"Acme", "1 Main St"}, tab.Rows[0])
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	xlsxPath := writeWorkbook(t, [][]string{{"Tenant"}, {"Acme"}})

	tab, err := Load(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tenant"}, tab.Header)

	csvPath := writeTemp(t, "in.csv", []byte("Tenant\nBolt\n"))
	tab, err = Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Bolt", tab.Rows[0][0])
}
