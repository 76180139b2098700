package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearest(t *testing.T) {
	schema := Schema{Coords: true}

	t.Run("picks minimum squared distance", func(t *testing.T) {
		table := Table{
			Schema: schema,
			Rows: []Record{
				{Code: "far", Latitude: "-5.0", Longitude: "-37.0"},
				{Code: "near", Latitude: "-5.0", Longitude: "-39.0"},
			},
		}

		i, ok := Nearest(table, -5.0, -39.5)
		require.True(t, ok)
		assert.Equal(t, "near", table.Rows[i].Code)
	})

	t.Run("tie keeps first row", func(t *testing.T) {
		table := Table{
			Schema: schema,
			Rows: []Record{
				{Code: "a", Latitude: "-5.0", Longitude: "-39.0"},
				{Code: "b", Latitude: "-5.0", Longitude: "-40.0"},
			},
		}

		i, ok := Nearest(table, -5.0, -39.5)
		require.True(t, ok)
		assert.Equal(t, "a", table.Rows[i].Code)
	})

	t.Run("skips rows with invalid coordinates", func(t *testing.T) {
		table := Table{
			Schema: schema,
			Rows: []Record{
				{Code: "broken", Latitude: "abc", Longitude: "-39.5"},
				{Code: "ok", Latitude: "-6.0", Longitude: "-40.0"},
			},
		}

		i, ok := Nearest(table, -5.0, -39.5)
		require.True(t, ok)
		assert.Equal(t, "ok", table.Rows[i].Code)
	})

	t.Run("comma-decimal coordinates work", func(t *testing.T) {
		table := Table{
			Schema: schema,
			Rows:   []Record{{Code: "pt", Latitude: "-5,01", Longitude: "-39,52"}},
		}

		_, ok := Nearest(table, -5.0, -39.5)
		assert.True(t, ok)
	})

	t.Run("no valid coordinates returns false", func(t *testing.T) {
		table := Table{
			Schema: schema,
			Rows:   []Record{{Latitude: "", Longitude: ""}, {Latitude: "x", Longitude: "y"}},
		}

		_, ok := Nearest(table, -5.0, -39.5)
		assert.False(t, ok)
	})

	t.Run("empty table returns false", func(t *testing.T) {
		_, ok := Nearest(Table{Schema: schema}, 0, 0)
		assert.False(t, ok)
	})
}
