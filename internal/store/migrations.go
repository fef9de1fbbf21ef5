package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    seed INTEGER NOT NULL,
    config_json TEXT NOT NULL,
    annual_production REAL,
    mean_gor REAL,
    mean_thermal_eff REAL
);

CREATE TABLE IF NOT EXISTS daily_results (
    run_id INTEGER NOT NULL REFERENCES runs(id),
    date DATE NOT NULL,
    month INTEGER NOT NULL,
    day_of_year INTEGER NOT NULL,
    irradiance REAL,
    ambient_temp_c REAL,
    relative_humidity REAL,
    vapor_pressure REAL,
    wind_speed REAL,
    water_temp_c REAL,
    glass_temp_c REAL,
    base_temp_c REAL,
    loss_conv_glass REAL,
    loss_rad_glass REAL,
    loss_conv_wall REAL,
    loss_cond REAL,
    loss_total REAL,
    solar_energy REAL,
    lost_energy REAL,
    useful_energy REAL,
    heating_energy REAL,
    evap_energy REAL,
    evaporated_kg REAL,
    production_liters REAL,
    gor REAL,
    thermal_eff REAL,
    PRIMARY KEY (run_id, date)
);

CREATE TABLE IF NOT EXISTS monthly_summaries (
    run_id INTEGER NOT NULL REFERENCES runs(id),
    month INTEGER NOT NULL,
    month_name TEXT NOT NULL,
    days INTEGER NOT NULL,
    production_liters REAL,
    irradiance REAL,
    ambient_temp_c REAL,
    water_temp_c REAL,
    relative_humidity REAL,
    wind_speed REAL,
    loss_total REAL,
    gor REAL,
    thermal_eff REAL,
    solar_energy REAL,
    useful_energy REAL,
    evap_energy REAL,
    PRIMARY KEY (run_id, month)
);

CREATE INDEX IF NOT EXISTS idx_daily_run_doy ON daily_results(run_id, day_of_year);
`,
	},
}

func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Printf("migrations: applying %d - %s", m.Version, m.Description)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
