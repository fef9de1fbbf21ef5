package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/lox/solstill/internal/aggregate"
	"github.com/lox/solstill/internal/api"
	"github.com/lox/solstill/internal/config"
	"github.com/lox/solstill/internal/metrics"
	"github.com/lox/solstill/internal/report"
	"github.com/lox/solstill/internal/sim"
	"github.com/lox/solstill/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to JSON configuration (default: built-in prototype)")
	dbPath := flag.String("db", "data/solstill.db", "path to SQLite database")
	outDir := flag.String("out", "reports", "directory for report output files")
	seed := flag.Int64("seed", sim.DefaultSeed, "random seed for the climate generator")
	port := flag.String("port", "8080", "HTTP server port")
	serve := flag.Bool("serve", false, "serve the web report after simulating")
	showParams := flag.Bool("show-params", false, "print derived parameters and exit")
	flag.Parse()

	// Optional .env for local overrides; missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	if v := os.Getenv("SOLSTILL_DB"); v != "" && *dbPath == "data/solstill.db" {
		*dbPath = v
	}
	if v := os.Getenv("SOLSTILL_PORT"); v != "" && *port == "8080" {
		*port = v
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if *showParams {
		printParams(sim.Derive(cfg))
		return
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("%s: %v", pragma, err)
		}
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	start := time.Now()
	results, err := sim.Simulate(cfg, *seed)
	if err != nil {
		metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
		log.Fatalf("simulate: %v", err)
	}
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	metrics.SimulationRunsTotal.WithLabelValues("ok").Inc()

	monthly := aggregate.Monthly(results)
	seasonal := aggregate.Seasonal(results)
	stats := aggregate.Stats(results)

	log.Printf("simulated %d days: %.2f L/year, mean GOR %.4f, thermal efficiency %.1f%%",
		len(results), stats.AnnualProductionLiters, stats.MeanGOR, stats.MeanThermalEff*100)

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		log.Fatalf("marshal config: %v", err)
	}
	runID, err := st.SaveRun(store.Run{
		CreatedAt:              time.Now().UTC(),
		Seed:                   *seed,
		ConfigJSON:             string(cfgJSON),
		AnnualProductionLiters: stats.AnnualProductionLiters,
		MeanGOR:                stats.MeanGOR,
		MeanThermalEff:         stats.MeanThermalEff,
	}, results, monthly)
	if err != nil {
		log.Fatalf("save run: %v", err)
	}
	log.Printf("stored run %d in %s", runID, *dbPath)

	params := sim.Derive(cfg)
	if err := report.WriteAll(*outDir, params.CapturedAreaM2, *seed, results, monthly, seasonal, stats); err != nil {
		log.Fatalf("write reports: %v", err)
	}
	log.Printf("reports written to %s", *outDir)

	if !*serve {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := api.NewServer(st, *port)
	log.Printf("starting server on :%s", *port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func printParams(p sim.DerivedParameters) {
	fmt.Printf("Capture area:        %.4f m²\n", p.CapturedAreaM2)
	fmt.Printf("Wall area:           %.4f m²\n", p.WallAreaM2)
	fmt.Printf("Total area:          %.4f m²\n", p.TotalAreaM2)
	fmt.Printf("Volume:              %.2f L\n", p.VolumeLiters)
	fmt.Printf("Water depth:         %.4f m\n", p.WaterDepthM)
	fmt.Printf("Material k:          %.2f W/(m·K)\n", p.MaterialConductivity)
	fmt.Printf("R walls:             %.6f K/W\n", p.RWalls)
	fmt.Printf("R glass:             %.6f K/W\n", p.RGlass)
	fmt.Printf("R total:             %.6f K/W\n", p.RTotal)
	fmt.Printf("Heating energy:      %.0f J\n", p.HeatingEnergyJ)
	fmt.Printf("Evaporation energy:  %.0f J\n", p.EvapEnergyJ)
	fmt.Printf("Total energy:        %.0f J\n", p.TotalEnergyJ)
	fmt.Printf("Useful sun:          %.0f s/day\n", p.UsefulSeconds)
	fmt.Println("Efficiency bands:")
	for _, b := range p.Bands {
		fmt.Printf("  >= %4.0f W/m²: %.2f\n", b.MinIrradiance, b.Factor)
	}
}
