package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Header: []string{"Tenant", "Ownership", "Address", "Phone"},
		Rows: [][]string{
			{"Acme", "REIT", "1 Main St", "555-0100"},
			{"Bolt", "Private", "2 Oak Ave", "555-0101"},
		},
	}
}

func TestDropColumns(t *testing.T) {
	tab := sampleTable()

	dropped := tab.DropColumns("Ownership", "Phone", "Notes")

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []string{"Tenant", "Address"}, tab.Header)
	assert.Equal(t, []string{"Acme", "1 Main St"}, tab.Rows[0])
	assert.Equal(t, []string{"Bolt", "2 Oak Ave"}, tab.Rows[1])
}

func TestDropColumns_NonePresent(t *testing.T) {
	tab := sampleTable()
	assert.Equal(t, 0, tab.DropColumns("Notes", "Email"))
	assert.Equal(t, 4, len(tab.Header))
}

func TestSelect(t *testing.T) {
	tab := sampleTable()

	out, err := tab.Select("Address", "Tenant")
	require.NoError(t, err)

	assert.Equal(t, []string{"Address", "Tenant"}, out.Header)
	assert.Equal(t, []string{"1 Main St", "Acme"}, out.Rows[0])
	// Original untouched.
	assert.Equal(t, 4, len(tab.Header))
}

func TestSelect_MissingColumn(t *testing.T) {
	tab := sampleTable()

	_, err := tab.Select("Tenant", "City")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "City")
	assert.Contains(t, err.Error(), "Ownership", "error should name the available columns")
}

func TestColumnIndex_TrimsHeader(t *testing.T) {
	tab := &Table{Header: []string{" Tenant ", "Address"}}
	assert.Equal(t, 0, tab.ColumnIndex("Tenant"))
	assert.Equal(t, -1, tab.ColumnIndex("State"))
}
