package models

import "time"

// DailyClimate is one day of the synthetic annual climate series.
type DailyClimate struct {
	Date             time.Time
	Month            int // 1-12
	DayOfYear        int // 0-364
	IrradianceWm2    float64
	AmbientTempC     float64
	AmbientTempK     float64
	RelativeHumidity float64 // percent
	VaporPressurePa  float64
	WindSpeedMs      float64
}

// DailyResult is a climate day plus the thermal model outputs for that day.
type DailyResult struct {
	DailyClimate

	WaterTempK float64
	WaterTempC float64
	GlassTempK float64
	GlassTempC float64
	BaseTempK  float64
	BaseTempC  float64

	// Heat losses in watts, by mechanism.
	LossConvGlassW float64
	LossRadGlassW  float64
	LossConvWallW  float64
	LossCondW      float64
	LossTotalW     float64

	// Daily energy balance in joules.
	SolarEnergyJ   float64
	LostEnergyJ    float64
	UsefulEnergyJ  float64
	HeatingEnergyJ float64
	EvapEnergyJ    float64

	EvaporatedKg     float64
	ProductionLiters float64

	GOR               float64
	ThermalEfficiency float64
}

// MonthlySummary aggregates the daily series for one calendar month.
// Production-like fields are sums, intensive fields are means.
type MonthlySummary struct {
	Month            int // 1-12
	MonthName        string
	Days             int
	ProductionLiters float64
	IrradianceWm2    float64
	AmbientTempC     float64
	WaterTempC       float64
	RelativeHumidity float64
	WindSpeedMs      float64
	LossTotalW       float64
	GOR              float64
	ThermalEff       float64
	SolarEnergyJ     float64
	UsefulEnergyJ    float64
	EvapEnergyJ      float64
}

// SeasonalSummary aggregates the daily series for one of the four fixed
// seasons. Labels are hemisphere-independent; the climate model shifts
// instead.
type SeasonalSummary struct {
	Season           string
	Days             int
	ProductionLiters float64
	PercentOfAnnual  float64
	AmbientTempC     float64
	WaterTempC       float64
	LossTotalW       float64
	GOR              float64
	SolarEnergyJ     float64
	UsefulEnergyJ    float64
}

// YearStats holds the cross-cutting statistics of a full simulated year.
type YearStats struct {
	AnnualProductionLiters float64
	MeanDailyLiters        float64
	MeanIrradianceWm2      float64
	MeanAmbientTempC       float64
	MeanWaterTempC         float64
	MeanGlassTempC         float64
	MeanHumidity           float64
	MeanWindSpeedMs        float64
	MeanGOR                float64
	MeanThermalEff         float64
	MeanLossW              float64

	// Annual energy balance.
	SolarEnergyJ     float64
	UsefulEnergyJ    float64
	EvapEnergyJ      float64
	LostEnergyJ      float64
	LostPercent      float64
	UsefulPercent    float64
	AnnualGOR        float64
	AnnualThermalEff float64

	// Pearson correlations of climate variables against daily production.
	CorrIrradiance float64
	CorrAmbient    float64
	CorrHumidity   float64

	HighProductionDays int // days above the daily mean
	LowProductionDays  int // days below half the daily mean
}
