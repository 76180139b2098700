package domain

import "strings"

// Metric identifies one of the four planned/actual metric pairs tracked per
// pond unit.
type Metric int

const (
	MetricPondTotal Metric = iota // total pond count
	MetricPondFull                // full-pond count
	MetricArea                    // area in hectares
	MetricDepth                   // average depth in meters
	NumMetrics
)

var metricNames = [NumMetrics]string{
	MetricPondTotal: "pond_total",
	MetricPondFull:  "pond_full",
	MetricArea:      "area_ha",
	MetricDepth:     "depth_m",
}

func (m Metric) String() string {
	if m < 0 || m >= NumMetrics {
		return "unknown"
	}
	return metricNames[m]
}

// Metrics lists all metric pairs in canonical order.
func Metrics() []Metric {
	return []Metric{MetricPondTotal, MetricPondFull, MetricArea, MetricDepth}
}

// MetricPair holds the raw planned and actual cell text for one metric.
// Numeric derivations are computed fresh from the text; the text is the
// source of truth.
type MetricPair struct {
	Planned string
	Actual  string
}

// PlannedNumber coerces the planned cell.
func (p MetricPair) PlannedNumber() Number { return ParseNumber(p.Planned) }

// ActualNumber coerces the actual cell.
func (p MetricPair) ActualNumber() Number { return ParseNumber(p.Actual) }

// Diff returns actual − planned, or absent if either side fails coercion.
func (p MetricPair) Diff() Number {
	planned := p.PlannedNumber()
	actual := p.ActualNumber()
	if !planned.Valid || !actual.Valid {
		return Absent
	}
	return Num(actual.Value - planned.Value)
}

// Record is one row of the source sheet. String fields hold raw cell text
// (whitespace-trimmed, blank for missing); Year and Month are derived from
// the filter date at ingestion and nil when the date is absent or
// unparsable.
type Record struct {
	Code       string
	Name       string
	Occurrence string

	PondTotal MetricPair
	PondFull  MetricPair
	Area      MetricPair
	Depth     MetricPair

	Latitude   string
	Longitude  string
	PhotoLink  string
	FilterDate string

	Year  *int
	Month *string
}

// Pair returns the metric pair for m.
func (r Record) Pair(m Metric) MetricPair {
	switch m {
	case MetricPondTotal:
		return r.PondTotal
	case MetricPondFull:
		return r.PondFull
	case MetricArea:
		return r.Area
	case MetricDepth:
		return r.Depth
	default:
		return MetricPair{}
	}
}

// Coordinates returns the coerced latitude and longitude.
func (r Record) Coordinates() (lat, lon Number) {
	return ParseCoordinate(r.Latitude), ParseCoordinate(r.Longitude)
}

// Caption builds the "code • name" display label, omitting blank parts.
func (r Record) Caption() string {
	parts := make([]string, 0, 2)
	if r.Code != "" {
		parts = append(parts, r.Code)
	}
	if r.Name != "" {
		parts = append(parts, r.Name)
	}
	return strings.Join(parts, " • ")
}

// Schema records which optional columns were present in the source sheet.
// Features depending on an absent column degrade to an empty state rather
// than failing the pass.
type Schema struct {
	Code       bool
	Name       bool
	Occurrence bool
	Pairs      [NumMetrics]bool // both planned and actual columns present
	Coords     bool             // both latitude and longitude present
	Photo      bool
	Date       bool
}

// HasPair reports whether both columns of the metric pair were present.
func (s Schema) HasPair(m Metric) bool {
	if m < 0 || m >= NumMetrics {
		return false
	}
	return s.Pairs[m]
}

// Table is one ingestion cycle's worth of records. Tables are rebuilt from a
// fresh fetch on every pass and never mutated in place.
type Table struct {
	Schema Schema
	Rows   []Record
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// CoercionFailures counts non-blank numeric cells that fail coercion, across
// all present metric pairs and coordinates. Surfaced as a data-quality
// metric; individual failures are recovered locally as absent.
func (t Table) CoercionFailures() int {
	n := 0
	count := func(raw string, parse func(string) Number) {
		if strings.TrimSpace(raw) != "" && !parse(raw).Valid {
			n++
		}
	}
	for _, r := range t.Rows {
		for _, m := range Metrics() {
			if !t.Schema.HasPair(m) {
				continue
			}
			p := r.Pair(m)
			count(p.Planned, ParseNumber)
			count(p.Actual, ParseNumber)
		}
		if t.Schema.Coords {
			count(r.Latitude, ParseCoordinate)
			count(r.Longitude, ParseCoordinate)
		}
	}
	return n
}

// MonthAbbr holds the fixed Portuguese month labels used for the month
// filter, indexed by month number − 1. Locale-fixed: the sheet and the
// dashboard both use these regardless of host locale.
var MonthAbbr = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthIndex returns the 0-based calendar position of a month label, or -1
// if the label is not one of the twelve abbreviations.
func MonthIndex(label string) int {
	for i, m := range MonthAbbr {
		if m == label {
			return i
		}
	}
	return -1
}
