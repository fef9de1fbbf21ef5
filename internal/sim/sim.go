package sim

import (
	"github.com/lox/solstill/internal/config"
	"github.com/lox/solstill/internal/models"
)

// DefaultSeed reproduces the published reference runs.
const DefaultSeed = 42

// Simulate runs the full annual simulation: validate the configuration,
// derive parameters, generate the climate series and compute the energy
// balance for each of the 365 days. The returned slice is ordered by date
// and owned by the caller; downstream consumers only read it.
func Simulate(cfg config.Config, seed int64) ([]models.DailyResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params := Derive(cfg)
	climate := NewGenerator(params, seed).Generate()

	results := make([]models.DailyResult, len(climate))
	for i, day := range climate {
		results[i] = ComputeDay(params, day)
	}
	return results, nil
}
