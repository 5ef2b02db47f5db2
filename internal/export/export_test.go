package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/domain"
)

func sampleLeads() []domain.Lead {
	phone := "512-555-0101"
	rating := 4.5
	year := 2010
	size := 30
	return []domain.Lead{
		{
			Name:        "Joe's Bakery",
			Industry:    "Bakery",
			Location:    "Austin, TX",
			Phone:       &phone,
			Rating:      &rating,
			YearFounded: &year,
			Size:        &size,
			Score:       80.5,
		},
		{Name: "Bare Minimum Co", Score: 12},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleLeads()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"Joe's Bakery", "Bakery", "Austin, TX", "512-555-0101", "2010", "30", "4.5", "80.50"}, rows[1])

	// optional fields render as empty cells, not zeros
	assert.Equal(t, []string{"Bare Minimum Co", "", "", "", "", "", "", "12.00"}, rows[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleLeads()))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)

	assert.Equal(t, "Joe's Bakery", out[0]["name"])
	assert.Equal(t, 80.5, out[0]["score"])
	assert.Nil(t, out[1]["phone"], "missing optionals are null")
	assert.Nil(t, out[1]["size"])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}
