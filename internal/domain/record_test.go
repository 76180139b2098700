package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricPair_Diff(t *testing.T) {
	tests := []struct {
		name     string
		pair     MetricPair
		expected Number
	}{
		{"both present", MetricPair{Planned: "10", Actual: "12"}, Num(2)},
		{"equal values", MetricPair{Planned: "5", Actual: "5"}, Num(0)},
		{"missing actual", MetricPair{Planned: "5", Actual: ""}, Absent},
		{"missing planned", MetricPair{Planned: "", Actual: "5"}, Absent},
		{"comma decimals", MetricPair{Planned: "2,5", Actual: "3,75"}, Num(1.25)},
		{"garbage actual", MetricPair{Planned: "5", Actual: "n/a"}, Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pair.Diff())
		})
	}
}

func TestRecord_Caption(t *testing.T) {
	t.Run("code and name", func(t *testing.T) {
		r := Record{Code: "VIV-001", Name: "Lagoa Azul"}
		assert.Equal(t, "VIV-001 • Lagoa Azul", r.Caption())
	})

	t.Run("code only", func(t *testing.T) {
		assert.Equal(t, "VIV-001", Record{Code: "VIV-001"}.Caption())
	})

	t.Run("name only", func(t *testing.T) {
		assert.Equal(t, "Lagoa Azul", Record{Name: "Lagoa Azul"}.Caption())
	})

	t.Run("both blank", func(t *testing.T) {
		assert.Equal(t, "", Record{}.Caption())
	})
}

func TestRecord_Coordinates(t *testing.T) {
	r := Record{Latitude: "-5,01", Longitude: "-39.52"}
	lat, lon := r.Coordinates()
	assert.Equal(t, Num(-5.01), lat)
	assert.Equal(t, Num(-39.52), lon)

	lat, lon = Record{}.Coordinates()
	assert.False(t, lat.Valid)
	assert.False(t, lon.Valid)
}

func TestTable_CoercionFailures(t *testing.T) {
	schema := Schema{Coords: true}
	schema.Pairs[MetricPondTotal] = true

	table := Table{
		Schema: schema,
		Rows: []Record{
			{PondTotal: MetricPair{Planned: "10", Actual: "abc"}, Latitude: "-5.0", Longitude: "-39.5"},
			{PondTotal: MetricPair{Planned: "", Actual: "12"}, Latitude: "xx", Longitude: ""},
		},
	}

	// "abc" and "xx" fail; blanks are absent, not failures; pairs outside
	// the schema are not scanned.
	assert.Equal(t, 2, table.CoercionFailures())
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 0, MonthIndex("Jan"))
	assert.Equal(t, 11, MonthIndex("Dez"))
	assert.Equal(t, -1, MonthIndex("Foo"))
}
