package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/domain"
)

const fullCSV = `CÓDIGO,Nome,Ocorrências,Nº Viveiros total,Atual Viveiros Total,Nº Viveiros cheio,Atual Viveiros cheio,Área (ha).1,Atual Área (ha).1,Prof. Média  (m),Atual Profun.,Lati,Long,Link Foto,Data Filtro
VIV-001,Lagoa Azul,Seca,10,12,"4","4","2,5","3,0","1,2","1,2","-5,01","-39,52",https://drive.google.com/file/d/1aBcDeFgHiJkLmN/view,15/03/2023
VIV-002,Riacho Doce,Normal,5,5,2,2,"1.234,5","1.234,5",2,2,-5.10,-39.60,https://example.com/p.jpg,01/07/2022
VIV-003,Poço Fundo,Seca,7,,3,3,,,,,,,," not a date "
`

func TestParse(t *testing.T) {
	cols := config.DefaultColumns()

	t.Run("full schema", func(t *testing.T) {
		table, err := Parse(strings.NewReader(fullCSV), cols)
		require.NoError(t, err)
		require.Len(t, table.Rows, 3)

		s := table.Schema
		assert.True(t, s.Code)
		assert.True(t, s.Name)
		assert.True(t, s.Occurrence)
		assert.True(t, s.Coords)
		assert.True(t, s.Photo)
		assert.True(t, s.Date)
		for _, m := range domain.Metrics() {
			assert.True(t, s.HasPair(m), m.String())
		}
	})

	t.Run("cells are trimmed and coerced lazily", func(t *testing.T) {
		table, err := Parse(strings.NewReader(fullCSV), cols)
		require.NoError(t, err)

		r := table.Rows[0]
		assert.Equal(t, "VIV-001", r.Code)
		assert.Equal(t, "10", r.PondTotal.Planned)
		assert.Equal(t, domain.Num(2), r.PondTotal.Diff())
		assert.Equal(t, domain.Num(0.5), r.Area.Diff())

		lat, lon := r.Coordinates()
		assert.Equal(t, domain.Num(-5.01), lat)
		assert.Equal(t, domain.Num(-39.52), lon)
	})

	t.Run("thousands separator survives round trip", func(t *testing.T) {
		table, err := Parse(strings.NewReader(fullCSV), cols)
		require.NoError(t, err)

		assert.Equal(t, domain.Num(1234.5), table.Rows[1].Area.ActualNumber())
	})

	t.Run("day-first dates derive year and month", func(t *testing.T) {
		table, err := Parse(strings.NewReader(fullCSV), cols)
		require.NoError(t, err)

		r := table.Rows[0]
		require.NotNil(t, r.Year)
		require.NotNil(t, r.Month)
		assert.Equal(t, 2023, *r.Year)
		assert.Equal(t, "Mar", *r.Month)

		r = table.Rows[1]
		require.NotNil(t, r.Month)
		assert.Equal(t, "Jul", *r.Month)
	})

	t.Run("unparsable date gives nil year and month for that row only", func(t *testing.T) {
		table, err := Parse(strings.NewReader(fullCSV), cols)
		require.NoError(t, err)

		r := table.Rows[2]
		assert.Nil(t, r.Year)
		assert.Nil(t, r.Month)
		assert.Equal(t, "not a date", r.FilterDate)
	})

	t.Run("zero-row sheet is not an error", func(t *testing.T) {
		table, err := Parse(strings.NewReader("CÓDIGO,Nome\n"), cols)
		require.NoError(t, err)
		assert.True(t, table.Empty())
		assert.True(t, table.Schema.Code)
	})

	t.Run("no header row is an error", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""), cols)
		require.Error(t, err)
	})

	t.Run("malformed csv is an error", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a,b\n\"unterminated"), cols)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read csv")
	})
}

func TestParse_MissingColumns(t *testing.T) {
	cols := config.DefaultColumns()

	t.Run("date column absent disables derivation", func(t *testing.T) {
		csv := "CÓDIGO,Nome\nVIV-001,Lagoa Azul\n"
		table, err := Parse(strings.NewReader(csv), cols)
		require.NoError(t, err)

		assert.False(t, table.Schema.Date)
		assert.Nil(t, table.Rows[0].Year)
		assert.Nil(t, table.Rows[0].Month)
	})

	t.Run("pair needs both planned and actual", func(t *testing.T) {
		csv := "CÓDIGO,Nº Viveiros total\nVIV-001,10\n"
		table, err := Parse(strings.NewReader(csv), cols)
		require.NoError(t, err)

		assert.False(t, table.Schema.HasPair(domain.MetricPondTotal))
	})

	t.Run("coords need both latitude and longitude", func(t *testing.T) {
		csv := "CÓDIGO,Lati\nVIV-001,-5.0\n"
		table, err := Parse(strings.NewReader(csv), cols)
		require.NoError(t, err)

		assert.False(t, table.Schema.Coords)
	})

	t.Run("short rows read as blank cells", func(t *testing.T) {
		csv := "CÓDIGO,Nome,Ocorrências\nVIV-001\n"
		table, err := Parse(strings.NewReader(csv), cols)
		require.NoError(t, err)

		require.Len(t, table.Rows, 1)
		assert.Equal(t, "VIV-001", table.Rows[0].Code)
		assert.Equal(t, "", table.Rows[0].Name)
	})
}
