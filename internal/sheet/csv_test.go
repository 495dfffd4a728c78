package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTemp(t, "in.csv", []byte("Tenant , Address\nAcme,1 Main St\nBolt,2 Oak Ave\n"))

	tab, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tenant", "Address"}, tab.Header)
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, []string{"Acme", "1 Main St"}, tab.Rows[0])
}

func TestReadCSV_JunkHeaderRow(t *testing.T) {
	path := writeTemp(t, "in.csv", []byte("Unnamed: 0,Unnamed: 1\nAddress,State\n1 Main St,FL\n"))

	tab, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Address", "State"}, tab.Header)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "1 Main St", tab.Rows[0][0])
}

func TestReadCSV_Latin1Bytes(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid on its own in UTF-8; the reader must
	// not choke on it.
	data := append([]byte("Name\nCaf"), 0xE9, '\n')
	path := writeTemp(t, "latin1.csv", data)

	tab, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "Café", tab.Rows[0][0])
}

func TestReadCSV_RaggedRows(t *testing.T) {
	path := writeTemp(t, "in.csv", []byte("A,B,C\n1,2\n1,2,3,4\n"))

	tab, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "", tab.Cell(tab.Rows[0], 2))
	assert.Equal(t, "3", tab.Cell(tab.Rows[1], 2))
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	in := &Table{
		Header: []string{"Tenant", "Address"},
		Rows:   [][]string{{"Acme", "1 Main St, Suite 4"}},
	}
	require.NoError(t, WriteCSV(path, in))

	out, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, in.Header, out.Header)
	assert.Equal(t, in.Rows, out.Rows)
}
