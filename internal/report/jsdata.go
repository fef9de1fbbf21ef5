package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/solstill/internal/metrics"
	"github.com/lox/solstill/internal/models"
)

// chartMonth is one monthly point for the web report charts.
type chartMonth struct {
	Month      string  `json:"month"`
	Production float64 `json:"production"`
	Irradiance float64 `json:"irradiance"`
	GOR        float64 `json:"gor"`
	WaterTempC float64 `json:"water_temp_c"`
}

// chartSeason is one seasonal slice for the web report charts.
type chartSeason struct {
	Production float64 `json:"production"`
	GOR        float64 `json:"gor"`
	Percent    float64 `json:"percent"`
}

type chartData struct {
	TotalProduction    float64                `json:"total_production"`
	MeanProduction     float64                `json:"mean_production"`
	MeanIrradiance     float64                `json:"mean_irradiance"`
	MeanGOR            float64                `json:"mean_gor"`
	ThermalEfficiency  float64                `json:"thermal_efficiency"`
	CaptureAreaM2      float64                `json:"capture_area_m2"`
	HighProductionDays int                    `json:"high_production_days"`
	LowProductionDays  int                    `json:"low_production_days"`
	CorrIrradiance     float64                `json:"corr_irradiance"`
	Monthly            []chartMonth           `json:"monthly"`
	Seasonal           map[string]chartSeason `json:"seasonal"`
}

// WriteChartData writes the simulation data as a JavaScript constant loaded
// by the static web report page.
func WriteChartData(path string, captureAreaM2 float64, stats models.YearStats,
	monthly []models.MonthlySummary, seasonal []models.SeasonalSummary) error {

	data := chartData{
		TotalProduction:    stats.AnnualProductionLiters,
		MeanProduction:     stats.MeanDailyLiters,
		MeanIrradiance:     stats.MeanIrradianceWm2,
		MeanGOR:            stats.MeanGOR,
		ThermalEfficiency:  stats.MeanThermalEff,
		CaptureAreaM2:      captureAreaM2,
		HighProductionDays: stats.HighProductionDays,
		LowProductionDays:  stats.LowProductionDays,
		CorrIrradiance:     stats.CorrIrradiance,
		Seasonal:           make(map[string]chartSeason, len(seasonal)),
	}
	for _, m := range monthly {
		data.Monthly = append(data.Monthly, chartMonth{
			Month:      m.MonthName,
			Production: m.ProductionLiters,
			Irradiance: m.IrradianceWm2,
			GOR:        m.GOR,
			WaterTempC: m.WaterTempC,
		})
	}
	for _, s := range seasonal {
		data.Seasonal[s.Season] = chartSeason{
			Production: s.ProductionLiters,
			GOR:        s.GOR,
			Percent:    s.PercentOfAnnual,
		}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chart data: %w", err)
	}
	content := fmt.Sprintf("// Generated by solstill. Loaded by the annual web report.\nconst simulationData = %s;\n", payload)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	metrics.ReportsWritten.WithLabelValues("jsdata").Inc()
	return nil
}
