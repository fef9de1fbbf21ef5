package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lox/solstill/internal/aggregate"
	"github.com/lox/solstill/internal/config"
	"github.com/lox/solstill/internal/models"
	"github.com/lox/solstill/internal/sim"
)

func simulatedYear(t *testing.T) ([]models.DailyResult, []models.MonthlySummary, []models.SeasonalSummary, models.YearStats) {
	t.Helper()
	results, err := sim.Simulate(config.Default(), sim.DefaultSeed)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return results, aggregate.Monthly(results), aggregate.Seasonal(results), aggregate.Stats(results)
}

func TestWriteDailyCSV(t *testing.T) {
	results, _, _, _ := simulatedYear(t)
	path := filepath.Join(t.TempDir(), "daily.csv")

	if err := WriteDailyCSV(path, results); err != nil {
		t.Fatalf("WriteDailyCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 366 {
		t.Errorf("expected header plus 365 rows, got %d", len(rows))
	}
	if rows[0][0] != "date" {
		t.Errorf("unexpected header start %q", rows[0][0])
	}
	if rows[1][0] != "2024-01-01" {
		t.Errorf("first row date = %q, want 2024-01-01", rows[1][0])
	}
}

func TestWriteMonthlyCSV(t *testing.T) {
	_, monthly, _, _ := simulatedYear(t)
	path := filepath.Join(t.TempDir(), "monthly.csv")

	if err := WriteMonthlyCSV(path, monthly); err != nil {
		t.Fatalf("WriteMonthlyCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 13 {
		t.Errorf("expected header plus 12 rows, got %d", len(rows))
	}
	if rows[1][1] != "January" || rows[12][1] != "December" {
		t.Errorf("unexpected month names %q, %q", rows[1][1], rows[12][1])
	}
}

func TestWriteResultsJSONRoundTrip(t *testing.T) {
	results, monthly, seasonal, stats := simulatedYear(t)
	path := filepath.Join(t.TempDir(), "results.json")

	in := Results{
		GeneratedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Seed:        sim.DefaultSeed,
		Stats:       stats,
		Monthly:     monthly,
		Seasonal:    seasonal,
		Daily:       results,
	}
	if err := WriteResultsJSON(path, in); err != nil {
		t.Fatalf("WriteResultsJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out Results
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Daily) != 365 {
		t.Errorf("daily records = %d, want 365", len(out.Daily))
	}
	if out.Stats.AnnualProductionLiters != stats.AnnualProductionLiters {
		t.Errorf("annual production changed across round trip: %v != %v",
			out.Stats.AnnualProductionLiters, stats.AnnualProductionLiters)
	}
}

func TestWriteExecutiveMarkdown(t *testing.T) {
	_, monthly, seasonal, stats := simulatedYear(t)
	path := filepath.Join(t.TempDir(), "report.md")

	now := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)
	if err := WriteExecutiveMarkdown(path, 0.1125, stats, monthly, seasonal, now); err != nil {
		t.Fatalf("WriteExecutiveMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# Executive Report",
		"*Generated: 2024-12-31*",
		"## Results Summary",
		"## Seasonal Production Distribution",
		"## Correlation Analysis",
		"## Energy Balance",
		"## Recommendations",
		"0.1125 m²",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Seasons are listed by production, best first.
	iSummer := strings.Index(text, "| Summer |")
	iWinter := strings.Index(text, "| Winter |")
	if iSummer < 0 || iWinter < 0 {
		t.Fatalf("seasonal table incomplete")
	}
	if iSummer > iWinter {
		t.Errorf("expected Summer before Winter in seasonal table")
	}
}

func TestWriteChartData(t *testing.T) {
	_, monthly, seasonal, stats := simulatedYear(t)
	path := filepath.Join(t.TempDir(), "simulation_data.js")

	if err := WriteChartData(path, 0.1125, stats, monthly, seasonal); err != nil {
		t.Fatalf("WriteChartData: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "const simulationData = {") {
		t.Fatalf("missing simulationData declaration")
	}

	// The payload between the declaration and trailing semicolon is JSON.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		t.Fatalf("malformed chart data file")
	}
	var payload struct {
		Monthly  []map[string]any          `json:"monthly"`
		Seasonal map[string]map[string]any `json:"seasonal"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		t.Fatalf("chart data payload is not valid JSON: %v", err)
	}
	if len(payload.Monthly) != 12 {
		t.Errorf("monthly chart points = %d, want 12", len(payload.Monthly))
	}
	if len(payload.Seasonal) != 4 {
		t.Errorf("seasonal chart slices = %d, want 4", len(payload.Seasonal))
	}
}

func TestWriteAll(t *testing.T) {
	results, monthly, seasonal, stats := simulatedYear(t)
	dir := filepath.Join(t.TempDir(), "out")

	if err := WriteAll(dir, 0.1125, sim.DefaultSeed, results, monthly, seasonal, stats); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, name := range []string{DailyCSVFile, MonthlyCSVFile, ResultsJSONFile, ExecutiveFile, ChartDataFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}
