package config

import "fmt"

// ValidationError reports a non-physical configuration parameter. The
// simulation refuses to start on one of these; nothing is partially computed.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Param, e.Reason)
}

func invalid(param, format string, args ...any) error {
	return &ValidationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every physical invariant the model depends on. It returns
// the first violation found. An unknown box material is deliberately not an
// error here: DerivedParameters falls back to aluminum and logs a warning.
func (c Config) Validate() error {
	if c.Dimensions.Length <= 0 {
		return invalid("dimensions.length", "must be positive, got %g", c.Dimensions.Length)
	}
	if c.Dimensions.Width <= 0 {
		return invalid("dimensions.width", "must be positive, got %g", c.Dimensions.Width)
	}
	if c.Dimensions.Height <= 0 {
		return invalid("dimensions.height", "must be positive, got %g", c.Dimensions.Height)
	}
	if c.Thermal.Absorptivity <= 0 || c.Thermal.Absorptivity > 1 {
		return invalid("thermal.absorptivity", "must be in (0,1], got %g", c.Thermal.Absorptivity)
	}
	if c.Water.SpecificHeat <= 0 {
		return invalid("water.specific_heat", "must be positive, got %g", c.Water.SpecificHeat)
	}
	if c.Water.LatentHeatVapor <= 0 {
		return invalid("water.latent_heat_vapor", "must be positive, got %g", c.Water.LatentHeatVapor)
	}
	if c.Water.InitialTempK <= 0 {
		return invalid("water.initial_temp_k", "must be positive, got %g", c.Water.InitialTempK)
	}
	if c.Water.BoilingTempK <= c.Water.InitialTempK {
		return invalid("water.boiling_temp_k", "boiling temperature %g K must exceed initial temperature %g K",
			c.Water.BoilingTempK, c.Water.InitialTempK)
	}
	if c.Operation.WaterMassKg <= 0 {
		return invalid("operation.water_mass_kg", "must be positive, got %g", c.Operation.WaterMassKg)
	}
	if c.Operation.UsefulSunHours <= 0 || c.Operation.UsefulSunHours > 24 {
		return invalid("operation.useful_sun_hours", "must be in (0,24], got %g", c.Operation.UsefulSunHours)
	}
	switch c.Operation.Hemisphere {
	case "north", "south":
	default:
		return invalid("operation.hemisphere", "must be %q or %q, got %q", "north", "south", c.Operation.Hemisphere)
	}
	if c.Simulation.BaseIrradiance <= 0 {
		return invalid("simulation.base_irradiance", "must be positive, got %g", c.Simulation.BaseIrradiance)
	}
	if c.Simulation.SeasonalAmplitude < 0 {
		return invalid("simulation.seasonal_amplitude", "must be non-negative, got %g", c.Simulation.SeasonalAmplitude)
	}
	if c.Simulation.DailyStdDev < 0 {
		return invalid("simulation.daily_std_dev", "must be non-negative, got %g", c.Simulation.DailyStdDev)
	}
	return c.validateBands()
}

func (c Config) validateBands() error {
	bands := c.Simulation.EfficiencyBands
	if len(bands) == 0 {
		return invalid("simulation.efficiency_bands", "at least one band required")
	}
	for i, b := range bands {
		if b.Factor <= 0 || b.Factor > 1 {
			return invalid("simulation.efficiency_bands", "band %d factor must be in (0,1], got %g", i, b.Factor)
		}
		if i > 0 && b.MinIrradiance >= bands[i-1].MinIrradiance {
			return invalid("simulation.efficiency_bands",
				"bands must be strictly descending by threshold (band %d: %g >= %g)",
				i, b.MinIrradiance, bands[i-1].MinIrradiance)
		}
	}
	if last := bands[len(bands)-1]; last.MinIrradiance != 0 {
		return invalid("simulation.efficiency_bands",
			"last band must have threshold 0 to cover the full irradiance domain, got %g", last.MinIrradiance)
	}
	return nil
}
