// Package store persists simulation runs and their daily and monthly result
// series in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lox/solstill/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is one persisted simulation run. ConfigJSON is the serialized
// configuration the run was executed with, so a run can be reproduced
// exactly from the store alone.
type Run struct {
	ID                     int64
	CreatedAt              time.Time
	Seed                   int64
	ConfigJSON             string
	AnnualProductionLiters float64
	MeanGOR                float64
	MeanThermalEff         float64
}

// SaveRun writes a run, its 365 daily results and its monthly summaries in
// one transaction and returns the new run ID.
func (s *Store) SaveRun(run Run, results []models.DailyResult, monthly []models.MonthlySummary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (seed, config_json, annual_production, mean_gor, mean_thermal_eff)
		VALUES (?, ?, ?, ?, ?)
	`, run.Seed, run.ConfigJSON, run.AnnualProductionLiters, run.MeanGOR, run.MeanThermalEff)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO daily_results (
			run_id, date, month, day_of_year,
			irradiance, ambient_temp_c, relative_humidity, vapor_pressure, wind_speed,
			water_temp_c, glass_temp_c, base_temp_c,
			loss_conv_glass, loss_rad_glass, loss_conv_wall, loss_cond, loss_total,
			solar_energy, lost_energy, useful_energy, heating_energy, evap_energy,
			evaporated_kg, production_liters, gor, thermal_eff
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare daily insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(
			runID, r.Date, r.Month, r.DayOfYear,
			r.IrradianceWm2, r.AmbientTempC, r.RelativeHumidity, r.VaporPressurePa, r.WindSpeedMs,
			r.WaterTempC, r.GlassTempC, r.BaseTempC,
			r.LossConvGlassW, r.LossRadGlassW, r.LossConvWallW, r.LossCondW, r.LossTotalW,
			r.SolarEnergyJ, r.LostEnergyJ, r.UsefulEnergyJ, r.HeatingEnergyJ, r.EvapEnergyJ,
			r.EvaporatedKg, r.ProductionLiters, r.GOR, r.ThermalEfficiency,
		); err != nil {
			return 0, fmt.Errorf("insert daily result %s: %w", r.Date.Format("2006-01-02"), err)
		}
	}

	for _, m := range monthly {
		if _, err := tx.Exec(`
			INSERT INTO monthly_summaries (
				run_id, month, month_name, days, production_liters,
				irradiance, ambient_temp_c, water_temp_c, relative_humidity, wind_speed,
				loss_total, gor, thermal_eff, solar_energy, useful_energy, evap_energy
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, m.Month, m.MonthName, m.Days, m.ProductionLiters,
			m.IrradianceWm2, m.AmbientTempC, m.WaterTempC, m.RelativeHumidity, m.WindSpeedMs,
			m.LossTotalW, m.GOR, m.ThermalEff, m.SolarEnergyJ, m.UsefulEnergyJ, m.EvapEnergyJ,
		); err != nil {
			return 0, fmt.Errorf("insert monthly summary %d: %w", m.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recent run, or nil if none have been saved.
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, seed, config_json, annual_production, mean_gor, mean_thermal_eff
		FROM runs
		ORDER BY id DESC
		LIMIT 1
	`)
	var run Run
	err := row.Scan(&run.ID, &run.CreatedAt, &run.Seed, &run.ConfigJSON,
		&run.AnnualProductionLiters, &run.MeanGOR, &run.MeanThermalEff)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetDailyResults returns the full daily series of a run, ordered by date.
func (s *Store) GetDailyResults(runID int64) ([]models.DailyResult, error) {
	rows, err := s.db.Query(`
		SELECT date, month, day_of_year,
			irradiance, ambient_temp_c, relative_humidity, vapor_pressure, wind_speed,
			water_temp_c, glass_temp_c, base_temp_c,
			loss_conv_glass, loss_rad_glass, loss_conv_wall, loss_cond, loss_total,
			solar_energy, lost_energy, useful_energy, heating_energy, evap_energy,
			evaporated_kg, production_liters, gor, thermal_eff
		FROM daily_results
		WHERE run_id = ?
		ORDER BY date ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.DailyResult
	for rows.Next() {
		var r models.DailyResult
		if err := rows.Scan(
			&r.Date, &r.Month, &r.DayOfYear,
			&r.IrradianceWm2, &r.AmbientTempC, &r.RelativeHumidity, &r.VaporPressurePa, &r.WindSpeedMs,
			&r.WaterTempC, &r.GlassTempC, &r.BaseTempC,
			&r.LossConvGlassW, &r.LossRadGlassW, &r.LossConvWallW, &r.LossCondW, &r.LossTotalW,
			&r.SolarEnergyJ, &r.LostEnergyJ, &r.UsefulEnergyJ, &r.HeatingEnergyJ, &r.EvapEnergyJ,
			&r.EvaporatedKg, &r.ProductionLiters, &r.GOR, &r.ThermalEfficiency,
		); err != nil {
			return nil, err
		}
		r.AmbientTempK = r.AmbientTempC + 273.15
		r.WaterTempK = r.WaterTempC + 273.15
		r.GlassTempK = r.GlassTempC + 273.15
		r.BaseTempK = r.BaseTempC + 273.15
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetMonthlySummaries returns the monthly summaries of a run in month order.
func (s *Store) GetMonthlySummaries(runID int64) ([]models.MonthlySummary, error) {
	rows, err := s.db.Query(`
		SELECT month, month_name, days, production_liters,
			irradiance, ambient_temp_c, water_temp_c, relative_humidity, wind_speed,
			loss_total, gor, thermal_eff, solar_energy, useful_energy, evap_energy
		FROM monthly_summaries
		WHERE run_id = ?
		ORDER BY month ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.MonthlySummary
	for rows.Next() {
		var m models.MonthlySummary
		if err := rows.Scan(
			&m.Month, &m.MonthName, &m.Days, &m.ProductionLiters,
			&m.IrradianceWm2, &m.AmbientTempC, &m.WaterTempC, &m.RelativeHumidity, &m.WindSpeedMs,
			&m.LossTotalW, &m.GOR, &m.ThermalEff, &m.SolarEnergyJ, &m.UsefulEnergyJ, &m.EvapEnergyJ,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, m)
	}
	return summaries, rows.Err()
}

// CountRuns reports how many runs are stored.
func (s *Store) CountRuns() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}
