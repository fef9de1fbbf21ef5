package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Dimensions are the outer dimensions of the desalination box in metres.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Thermal holds the optical/thermal properties of the box.
type Thermal struct {
	Absorptivity      float64 `json:"absorptivity"`
	IncidenceAngleDeg float64 `json:"incidence_angle_deg"`
	BoxMaterial       string  `json:"box_material"` // "steel", "aluminum" or "pvc"
}

// Water holds the thermophysical properties of the feed water.
type Water struct {
	SpecificHeat    float64 `json:"specific_heat"`     // J/(kg·K)
	LatentHeatVapor float64 `json:"latent_heat_vapor"` // J/kg
	InitialTempK    float64 `json:"initial_temp_k"`
	BoilingTempK    float64 `json:"boiling_temp_k"`
}

// Operation describes how the prototype is run.
type Operation struct {
	UsefulSunHours float64 `json:"useful_sun_hours"` // hours/day
	WaterMassKg    float64 `json:"water_mass_kg"`
	Hemisphere     string  `json:"hemisphere"` // "north" or "south"
	LatitudeDeg    float64 `json:"latitude_deg"`
}

// Band is one step of the piecewise irradiance-efficiency curve. Bands are
// ordered by descending MinIrradiance; the last band must have MinIrradiance 0
// so the table covers the whole irradiance domain.
type Band struct {
	MinIrradiance float64 `json:"min_irradiance"` // W/m²
	Factor        float64 `json:"factor"`
}

// Simulation holds the tunables of the synthetic climate generator.
type Simulation struct {
	BaseIrradiance    float64 `json:"base_irradiance"`    // W/m²
	SeasonalAmplitude float64 `json:"seasonal_amplitude"` // W/m²
	DailyStdDev       float64 `json:"daily_std_dev"`      // W/m²
	EfficiencyBands   []Band  `json:"efficiency_bands"`
}

// Config is the full simulator configuration. It is a plain value: callers
// construct one (or load it from JSON) and pass it into the simulation
// entry points, which never consult ambient state.
type Config struct {
	Dimensions   Dimensions         `json:"dimensions"`
	Thermal      Thermal            `json:"thermal"`
	Water        Water              `json:"water"`
	Conductivity map[string]float64 `json:"material_conductivity"` // W/(m·K)
	Operation    Operation          `json:"operation"`
	Simulation   Simulation         `json:"simulation"`
}

// Default returns the reference prototype configuration: a 0.45×0.25×0.30 m
// aluminum box at 40°N with 2 kg of feed water and 6 useful sun hours.
func Default() Config {
	return Config{
		Dimensions: Dimensions{Length: 0.45, Width: 0.25, Height: 0.30},
		Thermal: Thermal{
			Absorptivity:      0.9,
			IncidenceAngleDeg: 30,
			BoxMaterial:       "aluminum",
		},
		Water: Water{
			SpecificHeat:    4186,
			LatentHeatVapor: 2.26e6,
			InitialTempK:    293, // 20°C
			BoilingTempK:    368, // 95°C
		},
		Conductivity: map[string]float64{
			"steel":    50,
			"aluminum": 205,
			"pvc":      0.19,
		},
		Operation: Operation{
			UsefulSunHours: 6,
			WaterMassKg:    2,
			Hemisphere:     "north",
			LatitudeDeg:    40.0,
		},
		Simulation: Simulation{
			BaseIrradiance:    500,
			SeasonalAmplitude: 350,
			DailyStdDev:       100,
			EfficiencyBands: []Band{
				{MinIrradiance: 800, Factor: 0.80},
				{MinIrradiance: 600, Factor: 0.70},
				{MinIrradiance: 400, Factor: 0.55},
				{MinIrradiance: 0, Factor: 0.35},
			},
		},
	}
}

// Load reads a configuration from a JSON file previously written by Save.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON, for keeping a record of a
// specific simulation setup.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
