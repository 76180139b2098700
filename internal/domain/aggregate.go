package domain

import (
	"sort"
	"strconv"
)

// Count returns the row count of t.
func Count(t Table) int {
	return len(t.Rows)
}

// SumMetric reduces a selected numeric field over all rows, treating absent
// values as 0. An empty table sums to 0.
func SumMetric(t Table, value func(Record) Number) float64 {
	var sum float64
	for _, r := range t.Rows {
		sum += value(r).OrZero()
	}
	return sum
}

// SumActual sums the actual side of a metric pair, or 0 if the pair is
// absent from the schema.
func SumActual(t Table, m Metric) float64 {
	if !t.Schema.HasPair(m) {
		return 0
	}
	return SumMetric(t, func(r Record) Number { return r.Pair(m).ActualNumber() })
}

// Group is one distinct key combination and its row count.
type Group struct {
	Key   []string
	Count int
}

// GroupCount counts rows per distinct key combination. The key function
// returns false to exclude a row (a missing component drops the row, as the
// dashboard charts do). Groups are ordered by key, lexicographically across
// components.
func GroupCount(t Table, key func(Record) ([]string, bool)) []Group {
	counts := map[string]*Group{}
	for _, r := range t.Rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		id := joinKey(k)
		if g, exists := counts[id]; exists {
			g.Count++
			continue
		}
		counts[id] = &Group{Key: k, Count: 1}
	}

	groups := make([]Group, 0, len(counts))
	for _, g := range counts {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return joinKey(groups[i].Key) < joinKey(groups[j].Key)
	})
	return groups
}

// joinKey builds a collation key. \x00 cannot appear in cell text, so the
// join is unambiguous.
func joinKey(parts []string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "\x00"
		}
		key += p
	}
	return key
}

// CountByOccurrence counts rows per occurrence type, skipping blank
// occurrences. Empty when the occurrence column is absent.
func CountByOccurrence(t Table) []Group {
	if !t.Schema.Occurrence {
		return nil
	}
	return GroupCount(t, func(r Record) ([]string, bool) {
		if r.Occurrence == "" {
			return nil, false
		}
		return []string{r.Occurrence}, true
	})
}

// CountByYearOccurrence counts rows per (year, occurrence) pair, skipping
// rows missing either component. Empty when either column is absent.
func CountByYearOccurrence(t Table) []Group {
	if !t.Schema.Date || !t.Schema.Occurrence {
		return nil
	}
	return GroupCount(t, func(r Record) ([]string, bool) {
		if r.Year == nil || r.Occurrence == "" {
			return nil, false
		}
		return []string{strconv.Itoa(*r.Year), r.Occurrence}, true
	})
}

// Summary holds the four KPI card numbers for the filtered view.
type Summary struct {
	Units       int     `json:"units"`
	PondsTotal  float64 `json:"ponds_total"`
	PondsFull   float64 `json:"ponds_full"`
	AreaTotalHa float64 `json:"area_total_ha"`
}

// Summarize computes the KPI block: unit count plus sums of the actual pond
// count, full-pond count, and area columns.
func Summarize(t Table) Summary {
	return Summary{
		Units:       Count(t),
		PondsTotal:  SumActual(t, MetricPondTotal),
		PondsFull:   SumActual(t, MetricPondFull),
		AreaTotalHa: SumActual(t, MetricArea),
	}
}
