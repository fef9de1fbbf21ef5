package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lox/solstill/internal/metrics"
	"github.com/lox/solstill/internal/models"
)

// Results is the complete JSON dump of one simulation run.
type Results struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Seed        int64                    `json:"seed"`
	Stats       models.YearStats         `json:"stats"`
	Monthly     []models.MonthlySummary  `json:"monthly"`
	Seasonal    []models.SeasonalSummary `json:"seasonal"`
	Daily       []models.DailyResult     `json:"daily"`
}

// WriteResultsJSON writes the full run, indented for human inspection.
func WriteResultsJSON(path string, res Results) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	metrics.ReportsWritten.WithLabelValues("json").Inc()
	return nil
}
