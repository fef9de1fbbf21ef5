// Package sim implements the thermodynamic core of the solar desalination
// simulator: derived geometry and energy parameters, the synthetic annual
// climate generator, and the per-day energy-balance model.
package sim

import (
	"log"
	"math"

	"github.com/lox/solstill/internal/config"
)

// Physical constants and fixed material properties of the prototype design.
const (
	stefanBoltzmann = 5.67e-8 // W/(m²·K⁴)

	emissivity          = 0.95 // thermal emissivity of the cover
	glassTransmissivity = 0.9

	materialThickness      = 0.0025 // m
	insulationThickness    = 0.02   // m, polystyrene
	insulationConductivity = 0.04   // W/(m·K)

	glassThickness    = 0.01 // m
	glassConductivity = 1.0  // W/(m·K)

	hNaturalConvection = 5.0    // W/(m²·K), exterior still air
	hWaterConvection   = 50.0   // W/(m²·K)
	hCondensation      = 8000.0 // W/(m²·K), vapor on glass

	// Representative average of the Dunkle evaporation coefficient
	// h_ev = 16.273e-3 · h_cw · (Pw−Pg)/(Tw−Tg).
	evaporationCoefficient = 25.0 // W/(m²·K)

	defaultConductivity = 205.0 // aluminum fallback for unknown materials
)

// Calibrated efficiency factors for the insulated prototype. These replace
// the raw configured band factors: the configured thresholds are kept, the
// factors come from this table. Calibration constants, not physical ones.
var tunedBandFactors = []float64{0.85, 0.65, 0.45, 0.25}

// DerivedParameters holds everything the thermal model needs that is a pure
// function of the configuration: geometry, thermal resistances, the energy
// budget for the configured water mass, and the efficiency band table.
// Recompute it whenever the configuration changes; it is never mutated.
type DerivedParameters struct {
	Config config.Config

	CapturedAreaM2 float64
	BaseAreaM2     float64
	LidAreaM2      float64
	WallAreaM2     float64
	TotalAreaM2    float64
	VolumeM3       float64
	VolumeLiters   float64
	WaterDepthM    float64

	CosIncidence float64

	MaterialConductivity float64
	RConduction          float64
	RInsulation          float64
	RWalls               float64
	RGlass               float64
	RConvExterior        float64
	RTotal               float64

	HeatingEnergyJ float64
	EvapEnergyJ    float64
	TotalEnergyJ   float64
	EnergyPerKgJ   float64
	UsefulSeconds  float64

	EvapCoefficient float64
	Bands           []config.Band
}

// Derive computes the full parameter set from a validated configuration.
func Derive(cfg config.Config) DerivedParameters {
	d := DerivedParameters{Config: cfg}

	dim := cfg.Dimensions
	d.CapturedAreaM2 = dim.Length * dim.Width
	d.BaseAreaM2 = d.CapturedAreaM2
	d.LidAreaM2 = d.CapturedAreaM2
	d.WallAreaM2 = 2 * (dim.Length + dim.Width) * dim.Height
	d.TotalAreaM2 = d.BaseAreaM2 + d.LidAreaM2 + d.WallAreaM2
	d.VolumeM3 = d.CapturedAreaM2 * dim.Height
	d.VolumeLiters = d.VolumeM3 * 1000
	d.WaterDepthM = cfg.Operation.WaterMassKg / (1000 * d.BaseAreaM2)

	d.CosIncidence = math.Cos(cfg.Thermal.IncidenceAngleDeg * math.Pi / 180)

	k, ok := cfg.Conductivity[cfg.Thermal.BoxMaterial]
	if !ok {
		log.Printf("config: unknown box material %q, using aluminum conductivity %g W/(m·K)",
			cfg.Thermal.BoxMaterial, defaultConductivity)
		k = defaultConductivity
	}
	d.MaterialConductivity = k

	// R = L/(kA) for each conductive layer; walls are material + insulation
	// in series, lid is glass, and the exterior convective film sits in
	// series after the parallel combination of the two paths.
	d.RConduction = materialThickness / (k * d.WallAreaM2)
	d.RInsulation = insulationThickness / (insulationConductivity * d.WallAreaM2)
	d.RWalls = d.RConduction + d.RInsulation
	d.RGlass = glassThickness / (glassConductivity * d.LidAreaM2)
	d.RConvExterior = 1 / (hNaturalConvection * d.TotalAreaM2)
	d.RTotal = 1/(1/d.RWalls+1/d.RGlass) + d.RConvExterior

	mass := cfg.Operation.WaterMassKg
	deltaT := cfg.Water.BoilingTempK - cfg.Water.InitialTempK
	d.HeatingEnergyJ = mass * cfg.Water.SpecificHeat * deltaT
	d.EvapEnergyJ = mass * cfg.Water.LatentHeatVapor
	d.TotalEnergyJ = d.HeatingEnergyJ + d.EvapEnergyJ
	d.EnergyPerKgJ = d.TotalEnergyJ / mass
	d.UsefulSeconds = cfg.Operation.UsefulSunHours * 3600

	d.EvapCoefficient = evaporationCoefficient
	d.Bands = tuneBands(cfg.Simulation.EfficiencyBands)

	return d
}

// tuneBands keeps the configured thresholds but substitutes the calibrated
// factors for the insulated design, one per band from highest threshold
// down. Extra configured bands keep their own factors.
func tuneBands(raw []config.Band) []config.Band {
	bands := make([]config.Band, len(raw))
	copy(bands, raw)
	for i := range bands {
		if i < len(tunedBandFactors) {
			bands[i].Factor = tunedBandFactors[i]
		}
	}
	return bands
}

// BandFactor returns the efficiency factor for an irradiance level. Bands
// are descending by threshold and the last threshold is 0, so every
// non-negative irradiance matches.
func (d DerivedParameters) BandFactor(irradiance float64) float64 {
	for _, b := range d.Bands {
		if irradiance >= b.MinIrradiance {
			return b.Factor
		}
	}
	return d.Bands[len(d.Bands)-1].Factor
}
