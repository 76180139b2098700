// Package ingest turns the sheet's CSV export into a domain.Table. Ingestion
// is all-or-nothing: a malformed CSV stream fails the whole pass, while
// cell-level problems (bad numbers, bad dates) degrade to absent values on
// the affected row only.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/domain"
)

// dateLayouts are tried in order when parsing the filter date. The sheet
// uses day-first notation; ISO dates appear when rows are entered by the
// back office.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
}

// Parse reads the CSV export and builds a Table. The first row is the
// header; columns are located by the configured header names, and the table
// schema records which were found. Cells are whitespace-trimmed so a
// blank-ish cell becomes the single missing-value representation. A zero-row
// sheet is not an error; the caller decides how to surface the empty state.
func Parse(r io.Reader, cols config.Columns) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("csv export has no header row")
	}

	idx := headerIndex(rows[0])
	schema := buildSchema(idx, cols)

	table := domain.Table{Schema: schema}
	for _, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := domain.Record{
			Code:       cell(cols.Code),
			Name:       cell(cols.Name),
			Occurrence: cell(cols.Occurrence),
			PondTotal:  domain.MetricPair{Planned: cell(cols.PondTotalPlanned), Actual: cell(cols.PondTotalActual)},
			PondFull:   domain.MetricPair{Planned: cell(cols.PondFullPlanned), Actual: cell(cols.PondFullActual)},
			Area:       domain.MetricPair{Planned: cell(cols.AreaPlanned), Actual: cell(cols.AreaActual)},
			Depth:      domain.MetricPair{Planned: cell(cols.DepthPlanned), Actual: cell(cols.DepthActual)},
			Latitude:   cell(cols.Latitude),
			Longitude:  cell(cols.Longitude),
			PhotoLink:  cell(cols.PhotoLink),
			FilterDate: cell(cols.FilterDate),
		}

		if schema.Date {
			rec.Year, rec.Month = deriveYearMonth(rec.FilterDate)
		}

		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func buildSchema(idx map[string]int, cols config.Columns) domain.Schema {
	has := func(name string) bool {
		_, ok := idx[name]
		return name != "" && ok
	}

	s := domain.Schema{
		Code:       has(cols.Code),
		Name:       has(cols.Name),
		Occurrence: has(cols.Occurrence),
		Coords:     has(cols.Latitude) && has(cols.Longitude),
		Photo:      has(cols.PhotoLink),
		Date:       has(cols.FilterDate),
	}
	s.Pairs[domain.MetricPondTotal] = has(cols.PondTotalPlanned) && has(cols.PondTotalActual)
	s.Pairs[domain.MetricPondFull] = has(cols.PondFullPlanned) && has(cols.PondFullActual)
	s.Pairs[domain.MetricArea] = has(cols.AreaPlanned) && has(cols.AreaActual)
	s.Pairs[domain.MetricDepth] = has(cols.DepthPlanned) && has(cols.DepthActual)
	return s
}

// deriveYearMonth parses a day-first date cell into the derived filter
// fields. Unparsable dates give nil year and month for that row, never a
// row-level failure.
func deriveYearMonth(text string) (*int, *string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		year := t.Year()
		month := domain.MonthAbbr[int(t.Month())-1]
		return &year, &month
	}
	return nil, nil
}
