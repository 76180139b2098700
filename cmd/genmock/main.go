// Command genmock generates a synthetic sheet CSV fixture shaped like the
// operational spreadsheet: Portuguese headers, comma-decimal numbers, Drive
// photo links, and dd/mm/yyyy filter dates. It then runs the generated file
// through the actual ingest package and prints aggregate stats so test
// assertions can be updated against real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/viveiros.csv -rows 50 -seed 7
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/domain"
	"github.com/vivmon/viveiro-dashboard/internal/ingest"
)

var occurrences = []string{"Normal", "Seca", "Chuva intensa", "Manutenção"}

var names = []string{
	"Lagoa Azul", "Riacho Doce", "Poço Fundo", "Boa Vista", "Santa Clara",
	"Vale Verde", "Canto do Rio", "Barra Nova", "Serra Alta", "Campo Limpo",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated CSV")
	rows := flag.Int("rows", 50, "number of data rows to generate")
	seed := flag.Int64("seed", 1, "random seed, fixed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))
	data, err := generate(rng, *rows)
	if err != nil {
		return fmt.Errorf("generating csv: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o600); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s (%d rows)", *out, *rows)

	table, err := ingest.Parse(bytes.NewReader(data), config.DefaultColumns())
	if err != nil {
		return fmt.Errorf("ingesting fixture: %w", err)
	}
	printStats(table)
	return nil
}

func generate(rng *rand.Rand, rows int) ([]byte, error) {
	cols := config.DefaultColumns()
	header := []string{
		cols.Code, cols.Name, cols.Occurrence,
		cols.PondTotalPlanned, cols.PondTotalActual,
		cols.PondFullPlanned, cols.PondFullActual,
		cols.AreaPlanned, cols.AreaActual,
		cols.DepthPlanned, cols.DepthActual,
		cols.Latitude, cols.Longitude,
		cols.PhotoLink, cols.FilterDate,
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		if err := w.Write(genRow(rng, i)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// genRow fabricates one unit. Roughly one row in five diverges on its pond
// total, one in ten has a blank actual, and one in twenty has a garbage cell
// so coercion-failure handling gets exercised too.
func genRow(rng *rand.Rand, i int) []string {
	planned := 4 + rng.Intn(20)
	actual := planned
	if rng.Intn(5) == 0 {
		actual = planned + 1 + rng.Intn(4)
	}

	actualCell := strconv.Itoa(actual)
	switch {
	case rng.Intn(10) == 0:
		actualCell = ""
	case rng.Intn(20) == 0:
		actualCell = "s/ info"
	}

	areaHa := 0.5 + rng.Float64()*12
	depthM := 0.8 + rng.Float64()*1.8

	// Ceará-ish coordinates, comma decimals like the sheet exports them.
	lat := -4.5 - rng.Float64()
	lon := -39.0 - rng.Float64()

	day := 1 + rng.Intn(28)
	month := 1 + rng.Intn(12)
	year := 2021 + rng.Intn(4)

	return []string{
		fmt.Sprintf("VIV-%03d", i+1),
		names[rng.Intn(len(names))],
		occurrences[rng.Intn(len(occurrences))],
		strconv.Itoa(planned),
		actualCell,
		strconv.Itoa(planned / 2),
		strconv.Itoa(actual / 2),
		commaDecimal(areaHa, 2),
		commaDecimal(areaHa, 2),
		commaDecimal(depthM, 1),
		commaDecimal(depthM, 1),
		commaDecimal(lat, 5),
		commaDecimal(lon, 5),
		driveLink(rng),
		fmt.Sprintf("%02d/%02d/%d", day, month, year),
	}
}

func commaDecimal(v float64, places int) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', places, 64), ".", ",")
}

func driveLink(rng *rand.Rand) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	id := make([]byte, 28)
	for i := range id {
		id[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return "https://drive.google.com/file/d/" + string(id) + "/view?usp=sharing"
}

func printStats(t domain.Table) {
	diffs := domain.Detect(t)
	divergent := domain.Divergent(diffs)
	summary := domain.Summarize(t)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows: %d\n", len(t.Rows))
	fmt.Printf("Coercion failures: %d\n", t.CoercionFailures())
	fmt.Printf("Divergent rows: %d\n", len(divergent))
	fmt.Printf("Ponds total (actual): %g\n", summary.PondsTotal)
	fmt.Printf("Area total (ha): %g\n", summary.AreaTotalHa)

	fmt.Printf("Years: %v\n", domain.YearOptions(t))
	fmt.Printf("Months: %v\n", domain.MonthOptions(t))

	fmt.Print("By occurrence:")
	for _, g := range domain.CountByOccurrence(t) {
		fmt.Printf(" %s=%d", g.Key[0], g.Count)
	}
	fmt.Println()
}
