package domain

// RowDiff holds the per-pair signed differences (actual − planned) for one
// row, plus the divergence verdict. Diffs for pairs absent from the schema
// or failing coercion are the absent Number.
type RowDiff struct {
	Row       int // index into the source table's rows
	Diffs     [NumMetrics]Number
	Divergent bool
}

// Detect computes metric-pair differences for every row of t, in row order.
// A row is divergent iff at least one present diff is non-null and non-zero;
// an absent pair or a failed coercion never flags a row by itself.
func Detect(t Table) []RowDiff {
	diffs := make([]RowDiff, len(t.Rows))
	for i, r := range t.Rows {
		d := RowDiff{Row: i}
		for _, m := range Metrics() {
			if !t.Schema.HasPair(m) {
				continue
			}
			diff := r.Pair(m).Diff()
			d.Diffs[m] = diff
			if diff.Valid && diff.Value != 0 {
				d.Divergent = true
			}
		}
		diffs[i] = d
	}
	return diffs
}

// Divergent filters to the divergent subset, preserving order.
func Divergent(diffs []RowDiff) []RowDiff {
	var out []RowDiff
	for _, d := range diffs {
		if d.Divergent {
			out = append(out, d)
		}
	}
	return out
}

// DivergenceAlert is the serializable form of one divergent row, published
// to the alert sink for downstream consumers.
type DivergenceAlert struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Occurrence string `json:"occurrence,omitempty"`

	PondTotalPlanned Number `json:"pond_total_planned"`
	PondTotalActual  Number `json:"pond_total_actual"`
	PondTotalDiff    Number `json:"pond_total_diff"`

	PondFullPlanned Number `json:"pond_full_planned"`
	PondFullActual  Number `json:"pond_full_actual"`
	PondFullDiff    Number `json:"pond_full_diff"`

	AreaPlanned Number `json:"area_ha_planned"`
	AreaActual  Number `json:"area_ha_actual"`
	AreaDiff    Number `json:"area_ha_diff"`

	DepthPlanned Number `json:"depth_m_planned"`
	DepthActual  Number `json:"depth_m_actual"`
	DepthDiff    Number `json:"depth_m_diff"`
}

// NewDivergenceAlert builds the alert payload for a divergent row.
func NewDivergenceAlert(r Record, d RowDiff) DivergenceAlert {
	return DivergenceAlert{
		Code:       r.Code,
		Name:       r.Name,
		Occurrence: r.Occurrence,

		PondTotalPlanned: r.PondTotal.PlannedNumber(),
		PondTotalActual:  r.PondTotal.ActualNumber(),
		PondTotalDiff:    d.Diffs[MetricPondTotal],

		PondFullPlanned: r.PondFull.PlannedNumber(),
		PondFullActual:  r.PondFull.ActualNumber(),
		PondFullDiff:    d.Diffs[MetricPondFull],

		AreaPlanned: r.Area.PlannedNumber(),
		AreaActual:  r.Area.ActualNumber(),
		AreaDiff:    d.Diffs[MetricArea],

		DepthPlanned: r.Depth.PlannedNumber(),
		DepthActual:  r.Depth.ActualNumber(),
		DepthDiff:    d.Diffs[MetricDepth],
	}
}
