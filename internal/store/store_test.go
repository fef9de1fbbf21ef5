package store

import (
	"database/sql"
	"math"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/lox/solstill/internal/aggregate"
	"github.com/lox/solstill/internal/config"
	"github.com/lox/solstill/internal/sim"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestMigrateIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Errorf("version = %d, want %d", version, migrations[len(migrations)-1].Version)
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	cfg := config.Default()
	results, err := sim.Simulate(cfg, sim.DefaultSeed)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	monthly := aggregate.Monthly(results)
	stats := aggregate.Stats(results)

	runID, err := store.SaveRun(Run{
		Seed:                   sim.DefaultSeed,
		ConfigJSON:             "{}",
		AnnualProductionLiters: stats.AnnualProductionLiters,
		MeanGOR:                stats.MeanGOR,
		MeanThermalEff:         stats.MeanThermalEff,
	}, results, monthly)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == 0 {
		t.Fatal("SaveRun returned run ID 0")
	}

	latest, err := store.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest == nil || latest.ID != runID {
		t.Fatalf("LatestRun = %+v, want ID %d", latest, runID)
	}
	if latest.Seed != sim.DefaultSeed {
		t.Errorf("Seed = %d, want %d", latest.Seed, sim.DefaultSeed)
	}
	if math.Abs(latest.AnnualProductionLiters-stats.AnnualProductionLiters) > 1e-9 {
		t.Errorf("AnnualProductionLiters = %g, want %g",
			latest.AnnualProductionLiters, stats.AnnualProductionLiters)
	}

	stored, err := store.GetDailyResults(runID)
	if err != nil {
		t.Fatalf("GetDailyResults: %v", err)
	}
	if len(stored) != 365 {
		t.Fatalf("len(stored) = %d, want 365", len(stored))
	}
	for i := range stored {
		if !stored[i].Date.Equal(results[i].Date) {
			t.Fatalf("day %d date = %s, want %s", i, stored[i].Date, results[i].Date)
		}
		if math.Abs(stored[i].ProductionLiters-results[i].ProductionLiters) > 1e-9 {
			t.Fatalf("day %d production = %g, want %g",
				i, stored[i].ProductionLiters, results[i].ProductionLiters)
		}
		if math.Abs(stored[i].GOR-results[i].GOR) > 1e-9 {
			t.Fatalf("day %d GOR = %g, want %g", i, stored[i].GOR, results[i].GOR)
		}
	}

	summaries, err := store.GetMonthlySummaries(runID)
	if err != nil {
		t.Fatalf("GetMonthlySummaries: %v", err)
	}
	if len(summaries) != 12 {
		t.Fatalf("len(summaries) = %d, want 12", len(summaries))
	}
	for i, m := range summaries {
		if m.Month != i+1 {
			t.Errorf("summary %d month = %d, want %d", i, m.Month, i+1)
		}
		if math.Abs(m.ProductionLiters-monthly[i].ProductionLiters) > 1e-9 {
			t.Errorf("month %d production = %g, want %g",
				m.Month, m.ProductionLiters, monthly[i].ProductionLiters)
		}
	}
}

func TestLatestRunEmpty(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if run != nil {
		t.Errorf("LatestRun = %+v, want nil", run)
	}

	n, err := store.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if n != 0 {
		t.Errorf("CountRuns = %d, want 0", n)
	}
}

func TestMultipleRuns(t *testing.T) {
	store := setupTestStore(t)

	results, err := sim.Simulate(config.Default(), 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	monthly := aggregate.Monthly(results)

	first, err := store.SaveRun(Run{Seed: 1, ConfigJSON: "{}"}, results, monthly)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	second, err := store.SaveRun(Run{Seed: 2, ConfigJSON: "{}"}, results, monthly)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if second <= first {
		t.Errorf("second run ID %d not after first %d", second, first)
	}

	latest, err := store.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest.ID != second || latest.Seed != 2 {
		t.Errorf("LatestRun = %+v, want second run", latest)
	}
}
