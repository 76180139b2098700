package pipeline

import (
	"time"

	"github.com/vivmon/viveiro-dashboard/internal/domain"
)

// View is the full dashboard payload for one render pass: KPI cards, alert
// rows, map layers, gallery, chart datasets, and the detail table. Sections
// whose source columns are absent come back empty rather than failing.
type View struct {
	PassID      string    `json:"pass_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Empty       bool      `json:"empty"`

	Summary domain.Summary `json:"summary"`
	Options FilterOptions  `json:"options"`

	Alerts  []DetailRow    `json:"alerts"`
	Markers []Marker       `json:"markers"`
	Heatmap []HeatPoint    `json:"heatmap"`
	Gallery []domain.Photo `json:"gallery"`

	OccurrenceChart     []OccurrenceBar     `json:"occurrence_chart"`
	YearOccurrenceChart []YearOccurrenceBar `json:"year_occurrence_chart"`

	Rows []DetailRow `json:"rows"`
}

// FilterOptions lists the selectable filter values, derived from the full
// (unfiltered) table so narrowing one filter never hides the others'
// choices.
type FilterOptions struct {
	Years       []int    `json:"years"`
	Months      []string `json:"months"`
	Occurrences []string `json:"occurrences"`
}

// PairView is one planned/actual metric pair as displayed: the raw cell
// text plus the computed diff (null when either side is missing).
type PairView struct {
	Planned string        `json:"planned"`
	Actual  string        `json:"actual"`
	Diff    domain.Number `json:"diff"`
}

// DetailRow is one record of the detail and alert tables.
type DetailRow struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Occurrence string   `json:"occurrence"`
	PondTotal  PairView `json:"pond_total"`
	PondFull   PairView `json:"pond_full"`
	Area       PairView `json:"area_ha"`
	Depth      PairView `json:"depth_m"`
	FilterDate string   `json:"filter_date"`
	Divergent  bool     `json:"divergent"`
}

// Marker is one map point. Row indexes into View.Rows for popup details.
type Marker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tooltip string  `json:"tooltip"`
	Row     int     `json:"row"`
}

// HeatPoint is one heatmap sample weighted by the actual pond count.
type HeatPoint struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight float64 `json:"weight"`
}

// OccurrenceBar is one bar of the occurrence distribution chart.
type OccurrenceBar struct {
	Occurrence string `json:"occurrence"`
	Count      int    `json:"count"`
}

// YearOccurrenceBar is one stacked segment of the occurrences-by-year chart.
type YearOccurrenceBar struct {
	Year       string `json:"year"`
	Occurrence string `json:"occurrence"`
	Count      int    `json:"count"`
}

// NearestView resolves a map click: the closest filtered record plus its
// photos, or Found false when no record has valid coordinates.
type NearestView struct {
	PassID string         `json:"pass_id"`
	Found  bool           `json:"found"`
	Unit   *DetailRow     `json:"unit,omitempty"`
	Photos []domain.Photo `json:"photos,omitempty"`
}

// buildView assembles the dashboard payload from one pass's tables. Filter
// options come from the full table; everything else reflects the filtered
// view. diffs must be aligned with filtered.Rows.
func buildView(passID string, full, filtered domain.Table, diffs []domain.RowDiff) *View {
	v := &View{
		PassID:      passID,
		GeneratedAt: clock.Now(),
		Empty:       full.Empty(),
		Summary:     domain.Summarize(filtered),
		Options: FilterOptions{
			Years:       domain.YearOptions(full),
			Months:      domain.MonthOptions(full),
			Occurrences: domain.OccurrenceOptions(full),
		},
		Gallery: domain.Gallery(filtered),
	}

	for i, r := range filtered.Rows {
		row := buildDetailRow(r, diffs[i])
		v.Rows = append(v.Rows, row)
		if row.Divergent {
			v.Alerts = append(v.Alerts, row)
		}

		if filtered.Schema.Coords {
			lat, lon := r.Coordinates()
			if lat.Valid && lon.Valid {
				v.Markers = append(v.Markers, Marker{
					Lat:     lat.Value,
					Lon:     lon.Value,
					Tooltip: r.Caption(),
					Row:     i,
				})
				if filtered.Schema.HasPair(domain.MetricPondTotal) {
					if w := r.PondTotal.ActualNumber(); w.Valid && w.Value > 0 {
						v.Heatmap = append(v.Heatmap, HeatPoint{Lat: lat.Value, Lon: lon.Value, Weight: w.Value})
					}
				}
			}
		}
	}

	for _, g := range domain.CountByOccurrence(filtered) {
		v.OccurrenceChart = append(v.OccurrenceChart, OccurrenceBar{Occurrence: g.Key[0], Count: g.Count})
	}
	for _, g := range domain.CountByYearOccurrence(filtered) {
		v.YearOccurrenceChart = append(v.YearOccurrenceChart, YearOccurrenceBar{
			Year:       g.Key[0],
			Occurrence: g.Key[1],
			Count:      g.Count,
		})
	}

	return v
}

func buildDetailRow(r domain.Record, d domain.RowDiff) DetailRow {
	pair := func(m domain.Metric) PairView {
		p := r.Pair(m)
		return PairView{Planned: p.Planned, Actual: p.Actual, Diff: d.Diffs[m]}
	}
	return DetailRow{
		Code:       r.Code,
		Name:       r.Name,
		Occurrence: r.Occurrence,
		PondTotal:  pair(domain.MetricPondTotal),
		PondFull:   pair(domain.MetricPondFull),
		Area:       pair(domain.MetricArea),
		Depth:      pair(domain.MetricDepth),
		FilterDate: r.FilterDate,
		Divergent:  d.Divergent,
	}
}
