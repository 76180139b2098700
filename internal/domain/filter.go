package domain

import (
	"sort"
	"strings"
)

// FilterState is the set of active dashboard predicates. It is owned by the
// caller and never mutated here. Predicates AND-combine; an inactive
// predicate keeps all rows.
type FilterState struct {
	// FilterYears gates the year predicate; it only applies when enabled
	// AND at least one year is selected.
	FilterYears bool
	Years       []int

	// FilterMonths mirrors FilterYears for month labels.
	FilterMonths bool
	Months       []string

	// Occurrences is a membership filter on the occurrence type. Empty
	// means no occurrence filtering (the UI default is "all selected").
	Occurrences []string

	// Query is a case-insensitive substring match against code OR name.
	Query string
}

// Apply returns the rows of t matching every active predicate, in original
// order. The result shares the schema of t; Apply never invents rows.
func Apply(t Table, f FilterState) Table {
	years := intSet(f.Years)
	months := stringSet(f.Months)
	occurrences := stringSet(f.Occurrences)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	yearActive := f.FilterYears && len(years) > 0 && t.Schema.Date
	monthActive := f.FilterMonths && len(months) > 0 && t.Schema.Date
	occurrenceActive := len(occurrences) > 0 && t.Schema.Occurrence

	out := Table{Schema: t.Schema}
	for _, r := range t.Rows {
		if yearActive && (r.Year == nil || !years[*r.Year]) {
			continue
		}
		if monthActive && (r.Month == nil || !months[*r.Month]) {
			continue
		}
		if occurrenceActive && !occurrences[r.Occurrence] {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// matchesQuery reports whether code or name contains the lowercased query.
func matchesQuery(r Record, query string) bool {
	return strings.Contains(strings.ToLower(r.Code), query) ||
		strings.Contains(strings.ToLower(r.Name), query)
}

// YearOptions lists the distinct derived years in ascending order.
func YearOptions(t Table) []int {
	seen := map[int]bool{}
	var years []int
	for _, r := range t.Rows {
		if r.Year != nil && !seen[*r.Year] {
			seen[*r.Year] = true
			years = append(years, *r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// MonthOptions lists the distinct derived month labels in calendar order.
func MonthOptions(t Table) []string {
	seen := map[string]bool{}
	var months []string
	for _, r := range t.Rows {
		if r.Month != nil && !seen[*r.Month] {
			seen[*r.Month] = true
			months = append(months, *r.Month)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return MonthIndex(months[i]) < MonthIndex(months[j])
	})
	return months
}

// OccurrenceOptions lists the distinct non-blank occurrence types, sorted.
func OccurrenceOptions(t Table) []string {
	seen := map[string]bool{}
	var opts []string
	for _, r := range t.Rows {
		if r.Occurrence != "" && !seen[r.Occurrence] {
			seen[r.Occurrence] = true
			opts = append(opts, r.Occurrence)
		}
	}
	sort.Strings(opts)
	return opts
}

func intSet(vals []int) map[int]bool {
	s := make(map[int]bool, len(vals))
	for _, v := range vals {
		s[v] = true
	}
	return s
}

func stringSet(vals []string) map[string]bool {
	s := make(map[string]bool, len(vals))
	for _, v := range vals {
		s[v] = true
	}
	return s
}
