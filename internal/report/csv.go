// Package report writes the simulation outputs in the formats the project
// publishes: CSV data files, a JSON dump, chart data for the web report and
// an executive summary in Markdown.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lox/solstill/internal/metrics"
	"github.com/lox/solstill/internal/models"
)

var dailyHeader = []string{
	"date", "month", "day_of_year",
	"irradiance_wm2", "ambient_temp_c", "relative_humidity", "vapor_pressure_pa", "wind_speed_ms",
	"water_temp_c", "glass_temp_c", "base_temp_c",
	"loss_total_w", "solar_energy_j", "useful_energy_j", "evap_energy_j",
	"production_liters", "gor", "thermal_efficiency",
}

// WriteDailyCSV writes the full daily series.
func WriteDailyCSV(path string, results []models.DailyResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dailyHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.DayOfYear),
			ftoa(r.IrradianceWm2), ftoa(r.AmbientTempC), ftoa(r.RelativeHumidity),
			ftoa(r.VaporPressurePa), ftoa(r.WindSpeedMs),
			ftoa(r.WaterTempC), ftoa(r.GlassTempC), ftoa(r.BaseTempC),
			ftoa(r.LossTotalW), ftoa(r.SolarEnergyJ), ftoa(r.UsefulEnergyJ), ftoa(r.EvapEnergyJ),
			ftoa(r.ProductionLiters), ftoa(r.GOR), ftoa(r.ThermalEfficiency),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	metrics.ReportsWritten.WithLabelValues("csv").Inc()
	return nil
}

// WriteMonthlyCSV writes the monthly summary table.
func WriteMonthlyCSV(path string, monthly []models.MonthlySummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"month", "month_name", "days", "production_liters",
		"irradiance_wm2", "ambient_temp_c", "water_temp_c", "relative_humidity", "wind_speed_ms",
		"loss_total_w", "gor", "thermal_efficiency",
		"solar_energy_j", "useful_energy_j", "evap_energy_j",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range monthly {
		row := []string{
			strconv.Itoa(m.Month), m.MonthName, strconv.Itoa(m.Days), ftoa(m.ProductionLiters),
			ftoa(m.IrradianceWm2), ftoa(m.AmbientTempC), ftoa(m.WaterTempC),
			ftoa(m.RelativeHumidity), ftoa(m.WindSpeedMs),
			ftoa(m.LossTotalW), ftoa(m.GOR), ftoa(m.ThermalEff),
			ftoa(m.SolarEnergyJ), ftoa(m.UsefulEnergyJ), ftoa(m.EvapEnergyJ),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	metrics.ReportsWritten.WithLabelValues("csv").Inc()
	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
