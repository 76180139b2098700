// Command validate runs data-quality checks against a sheet export: header
// coverage, numeric and coordinate coercion, filter-date parsing, photo
// links, and planned/actual divergences. It reads either a local CSV file or
// the live sheet.
//
// Usage:
//
//	go run ./cmd/validate -csv data/mock/viveiros.csv
//	go run ./cmd/validate -sheet-id 1AbC... -gid 0
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/vivmon/viveiro-dashboard/internal/adapter/sheets"
	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/domain"
	"github.com/vivmon/viveiro-dashboard/internal/ingest"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to a sheet CSV export")
	sheetID := flag.String("sheet-id", "", "Google Sheet ID for a live fetch")
	gid := flag.String("gid", "0", "worksheet gid for a live fetch")
	fetchTimeout := flag.Duration("fetch-timeout", 30*time.Second, "live fetch timeout")
	flag.Parse()

	if (*csvPath == "") == (*sheetID == "") {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "exactly one of -csv or -sheet-id is required")
		os.Exit(1)
	}

	data, err := loadData(*csvPath, *sheetID, *gid, *fetchTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load sheet: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(data))
}

func loadData(csvPath, sheetID, gid string, timeout time.Duration) ([]byte, error) {
	if csvPath != "" {
		return os.ReadFile(csvPath)
	}
	client := sheets.NewClient(sheetID, gid, timeout, slog.Default())
	return client.FetchCSV(context.Background())
}

func run(data []byte) int {
	fmt.Println("=== Sheet Data Quality Validation ===")
	fmt.Println()

	table, err := ingest.Parse(bytes.NewReader(data), config.DefaultColumns())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse sheet: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeaders(table),
		validateCells(table),
		validatePhotoLinks(table),
		validateDivergences(table),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d, coercion failures: %d\n", len(table.Rows), table.CoercionFailures())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Header Coverage ──
// Each missing column group silently degrades a dashboard section, so report
// every absence even though none of them is fatal to ingestion.

func validateHeaders(t domain.Table) *phase {
	p := &phase{name: "Phase 1: Header Coverage"}

	if !t.Schema.Code {
		p.errorf("code column missing: search and captions degrade")
	}
	if !t.Schema.Name {
		p.errorf("name column missing: search and captions degrade")
	}
	if !t.Schema.Occurrence {
		p.errorf("occurrence column missing: occurrence filter and charts disabled")
	}
	for _, m := range domain.Metrics() {
		if !t.Schema.HasPair(m) {
			p.errorf("%s pair incomplete: divergence detection skips it", m)
		}
	}
	if !t.Schema.Coords {
		p.errorf("coordinate columns missing: map layers disabled")
	}
	if !t.Schema.Photo {
		p.errorf("photo link column missing: gallery disabled")
	}
	if !t.Schema.Date {
		p.errorf("filter date column missing: year/month filters disabled")
	}
	return p
}

// ── Phase 2: Cell Coercion ──

func validateCells(t domain.Table) *phase {
	p := &phase{name: "Phase 2: Cell Coercion"}

	for i, r := range t.Rows {
		line := i + 2 // header is line 1

		for _, m := range domain.Metrics() {
			if !t.Schema.HasPair(m) {
				continue
			}
			pair := r.Pair(m)
			checkNumeric(p, line, m.String()+" planned", pair.Planned)
			checkNumeric(p, line, m.String()+" actual", pair.Actual)
		}

		if t.Schema.Coords {
			checkCoordinate(p, line, "latitude", r.Latitude)
			checkCoordinate(p, line, "longitude", r.Longitude)
		}

		if t.Schema.Date && strings.TrimSpace(r.FilterDate) != "" && r.Year == nil {
			p.errorf("line %d: filter date %q not parseable day-first", line, r.FilterDate)
		}
	}
	return p
}

func checkNumeric(p *phase, line int, field, cell string) {
	if strings.TrimSpace(cell) == "" {
		return
	}
	if !domain.ParseNumber(cell).Valid {
		p.errorf("line %d: %s cell %q does not coerce to a number", line, field, cell)
	}
}

func checkCoordinate(p *phase, line int, field, cell string) {
	if strings.TrimSpace(cell) == "" {
		return
	}
	if !domain.ParseCoordinate(cell).Valid {
		p.errorf("line %d: %s cell %q does not coerce to a coordinate", line, field, cell)
	}
}

// ── Phase 3: Photo Links ──
// Non-Drive links still render (they pass through unchanged), but flag them
// so unexpected link shapes in the sheet get noticed.

func validatePhotoLinks(t domain.Table) *phase {
	p := &phase{name: "Phase 3: Photo Links"}
	if !t.Schema.Photo {
		return p
	}

	for i, r := range t.Rows {
		link := strings.TrimSpace(r.PhotoLink)
		if link == "" {
			continue
		}
		if strings.Contains(link, "drive.google.com") && domain.DriveFileID(link) == "" {
			p.errorf("line %d: drive link %q has no extractable file ID", i+2, link)
		}
	}
	return p
}

// ── Phase 4: Divergences ──
// Divergent rows are reported as findings, not failures: the phase exists to
// surface the list, and only impossible states (negative actuals) fail it.

func validateDivergences(t domain.Table) *phase {
	p := &phase{name: "Phase 4: Divergences"}

	divergent := domain.Divergent(domain.Detect(t))
	if len(divergent) > 0 {
		fmt.Printf("  Note: %d divergent row(s)\n", len(divergent))
	}
	for _, d := range divergent {
		r := t.Rows[d.Row]
		var parts []string
		for _, m := range domain.Metrics() {
			if diff := d.Diffs[m]; diff.Valid && diff.Value != 0 {
				parts = append(parts, fmt.Sprintf("%s %+g", m, diff.Value))
			}
		}
		fmt.Printf("    line %d %s: %s\n", d.Row+2, r.Caption(), strings.Join(parts, ", "))
	}

	for i, r := range t.Rows {
		for _, m := range domain.Metrics() {
			if !t.Schema.HasPair(m) {
				continue
			}
			if n := r.Pair(m).ActualNumber(); n.Valid && n.Value < 0 {
				p.errorf("line %d: %s actual is negative (%g)", i+2, m, n.Value)
			}
		}
	}
	return p
}
