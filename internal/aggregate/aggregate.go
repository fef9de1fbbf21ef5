// Package aggregate reduces the daily simulation series into monthly and
// seasonal summaries and full-year statistics. It only reads the daily
// records; summaries are recomputed in full on every call.
package aggregate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lox/solstill/internal/models"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Seasons in report order. The month sets are fixed regardless of
// hemisphere; the climate model, not the grouping, moves with it.
var seasons = []struct {
	Name   string
	Months [3]int
}{
	{"Winter", [3]int{12, 1, 2}},
	{"Spring", [3]int{3, 4, 5}},
	{"Summer", [3]int{6, 7, 8}},
	{"Autumn", [3]int{9, 10, 11}},
}

// Monthly groups the daily series by calendar month. All 12 months are
// always present in the output, in order, even if a month has no days.
func Monthly(records []models.DailyResult) []models.MonthlySummary {
	summaries := make([]models.MonthlySummary, 12)
	for i := range summaries {
		summaries[i].Month = i + 1
		summaries[i].MonthName = monthNames[i]
	}

	for _, r := range records {
		s := &summaries[r.Month-1]
		s.Days++
		s.ProductionLiters += r.ProductionLiters
		s.SolarEnergyJ += r.SolarEnergyJ
		s.UsefulEnergyJ += r.UsefulEnergyJ
		s.EvapEnergyJ += r.EvapEnergyJ
		s.IrradianceWm2 += r.IrradianceWm2
		s.AmbientTempC += r.AmbientTempC
		s.WaterTempC += r.WaterTempC
		s.RelativeHumidity += r.RelativeHumidity
		s.WindSpeedMs += r.WindSpeedMs
		s.LossTotalW += r.LossTotalW
		s.GOR += r.GOR
		s.ThermalEff += r.ThermalEfficiency
	}

	for i := range summaries {
		s := &summaries[i]
		if s.Days == 0 {
			continue
		}
		n := float64(s.Days)
		s.IrradianceWm2 /= n
		s.AmbientTempC /= n
		s.WaterTempC /= n
		s.RelativeHumidity /= n
		s.WindSpeedMs /= n
		s.LossTotalW /= n
		s.GOR /= n
		s.ThermalEff /= n
	}
	return summaries
}

// Seasonal groups the daily series into the four fixed seasons. Every season
// is present in the output; one with no days is an explicit zero-valued row
// so downstream tables and charts never index a missing season.
func Seasonal(records []models.DailyResult) []models.SeasonalSummary {
	seasonOf := make(map[int]int, 12)
	for i, s := range seasons {
		for _, m := range s.Months {
			seasonOf[m] = i
		}
	}

	summaries := make([]models.SeasonalSummary, len(seasons))
	for i, s := range seasons {
		summaries[i].Season = s.Name
	}

	var annual float64
	for _, r := range records {
		s := &summaries[seasonOf[r.Month]]
		s.Days++
		s.ProductionLiters += r.ProductionLiters
		s.SolarEnergyJ += r.SolarEnergyJ
		s.UsefulEnergyJ += r.UsefulEnergyJ
		s.AmbientTempC += r.AmbientTempC
		s.WaterTempC += r.WaterTempC
		s.LossTotalW += r.LossTotalW
		s.GOR += r.GOR
		annual += r.ProductionLiters
	}

	for i := range summaries {
		s := &summaries[i]
		if s.Days > 0 {
			n := float64(s.Days)
			s.AmbientTempC /= n
			s.WaterTempC /= n
			s.LossTotalW /= n
			s.GOR /= n
		}
		if annual > 0 {
			s.PercentOfAnnual = 100 * s.ProductionLiters / annual
		}
	}
	return summaries
}

// Stats computes full-year totals, means and correlations from the daily
// series.
func Stats(records []models.DailyResult) models.YearStats {
	var st models.YearStats
	n := len(records)
	if n == 0 {
		return st
	}

	production := make([]float64, n)
	irradiance := make([]float64, n)
	ambient := make([]float64, n)
	humidity := make([]float64, n)

	for i, r := range records {
		production[i] = r.ProductionLiters
		irradiance[i] = r.IrradianceWm2
		ambient[i] = r.AmbientTempC
		humidity[i] = r.RelativeHumidity

		st.AnnualProductionLiters += r.ProductionLiters
		st.SolarEnergyJ += r.SolarEnergyJ
		st.UsefulEnergyJ += r.UsefulEnergyJ
		st.EvapEnergyJ += r.EvapEnergyJ
		st.LostEnergyJ += r.LostEnergyJ
		st.MeanWaterTempC += r.WaterTempC
		st.MeanGlassTempC += r.GlassTempC
		st.MeanWindSpeedMs += r.WindSpeedMs
		st.MeanGOR += r.GOR
		st.MeanThermalEff += r.ThermalEfficiency
		st.MeanLossW += r.LossTotalW
	}

	fn := float64(n)
	st.MeanDailyLiters = st.AnnualProductionLiters / fn
	st.MeanIrradianceWm2 = stat.Mean(irradiance, nil)
	st.MeanAmbientTempC = stat.Mean(ambient, nil)
	st.MeanHumidity = stat.Mean(humidity, nil)
	st.MeanWaterTempC /= fn
	st.MeanGlassTempC /= fn
	st.MeanWindSpeedMs /= fn
	st.MeanGOR /= fn
	st.MeanThermalEff /= fn
	st.MeanLossW /= fn

	if st.SolarEnergyJ > 0 {
		st.AnnualGOR = st.EvapEnergyJ / st.SolarEnergyJ
		st.AnnualThermalEff = st.UsefulEnergyJ / st.SolarEnergyJ
		st.LostPercent = 100 * st.LostEnergyJ / st.SolarEnergyJ
		st.UsefulPercent = 100 * st.UsefulEnergyJ / st.SolarEnergyJ
	}

	st.CorrIrradiance = Correlation(irradiance, production)
	st.CorrAmbient = Correlation(ambient, production)
	st.CorrHumidity = Correlation(humidity, production)

	for _, p := range production {
		if p > st.MeanDailyLiters {
			st.HighProductionDays++
		}
		if p < st.MeanDailyLiters/2 {
			st.LowProductionDays++
		}
	}
	return st
}

// Correlation is the Pearson correlation of two equal-length series. A
// degenerate (constant) series has no defined correlation; it is reported
// as 0 instead of letting NaN propagate into reports.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	c := stat.Correlation(x, y, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}
