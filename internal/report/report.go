package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/solstill/internal/models"
)

// Canonical output file names inside the report directory.
const (
	DailyCSVFile    = "daily.csv"
	MonthlyCSVFile  = "monthly.csv"
	ResultsJSONFile = "results.json"
	ExecutiveFile   = "executive_report.md"
	ChartDataFile   = "simulation_data.js"
)

// WriteAll writes the complete report set for one run into dir, creating it
// if needed.
func WriteAll(dir string, captureAreaM2 float64, seed int64,
	results []models.DailyResult, monthly []models.MonthlySummary,
	seasonal []models.SeasonalSummary, stats models.YearStats) error {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := WriteDailyCSV(filepath.Join(dir, DailyCSVFile), results); err != nil {
		return err
	}
	if err := WriteMonthlyCSV(filepath.Join(dir, MonthlyCSVFile), monthly); err != nil {
		return err
	}
	res := Results{
		GeneratedAt: time.Now().UTC(),
		Seed:        seed,
		Stats:       stats,
		Monthly:     monthly,
		Seasonal:    seasonal,
		Daily:       results,
	}
	if err := WriteResultsJSON(filepath.Join(dir, ResultsJSONFile), res); err != nil {
		return err
	}
	if err := WriteExecutiveMarkdown(filepath.Join(dir, ExecutiveFile), captureAreaM2, stats, monthly, seasonal, time.Now()); err != nil {
		return err
	}
	return WriteChartData(filepath.Join(dir, ChartDataFile), captureAreaM2, stats, monthly, seasonal)
}
