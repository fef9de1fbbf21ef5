package api_test

import (
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lox/solstill/internal/aggregate"
	"github.com/lox/solstill/internal/api"
	"github.com/lox/solstill/internal/config"
	"github.com/lox/solstill/internal/models"
	"github.com/lox/solstill/internal/sim"
	"github.com/lox/solstill/internal/store"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	if err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	return s
}

func storeSimulatedRun(t *testing.T, s *store.Store) []models.DailyResult {
	t.Helper()
	results, err := sim.Simulate(config.Default(), sim.DefaultSeed)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	stats := aggregate.Stats(results)
	_, err = s.SaveRun(store.Run{
		CreatedAt:              time.Now().UTC(),
		Seed:                   sim.DefaultSeed,
		AnnualProductionLiters: stats.AnnualProductionLiters,
		MeanGOR:                stats.MeanGOR,
		MeanThermalEff:         stats.MeanThermalEff,
	}, results, aggregate.Monthly(results))
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	return results
}

func TestHealthEndpoint_Empty(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestStore(t), "8080")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var health api.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "empty" {
		t.Errorf("status = %q, want empty", health.Status)
	}
	if health.Runs != 0 {
		t.Errorf("runs = %d, want 0", health.Runs)
	}
}

func TestHealthEndpoint_WithRun(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)
	storeSimulatedRun(t, s)
	srv := api.NewServer(s, "8080")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var health api.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("status = %q, want ok", health.Status)
	}
	if health.Runs != 1 {
		t.Errorf("runs = %d, want 1", health.Runs)
	}
	if health.LatestRun == nil {
		t.Error("expected latest_run timestamp")
	}
}

func TestIndexPage_NoData(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestStore(t), "8080")

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "No simulation runs stored yet") {
		t.Error("expected empty-state message")
	}
	if strings.Contains(body, "id=\"monthlyTable\"") {
		t.Error("expected no monthly table when no data")
	}
}

func TestIndexPage_WithData(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)
	storeSimulatedRun(t, s)
	srv := api.NewServer(s, "8080")

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<h1>Solar Desalination Box - Annual Report</h1>") {
		t.Error("expected report heading")
	}
	if !strings.Contains(body, "class=\"stats-card\"") {
		t.Error("expected stats cards")
	}
	if !strings.Contains(body, "id=\"monthlyTable\"") {
		t.Error("expected monthly table")
	}
	if !strings.Contains(body, "December") {
		t.Error("expected all months rendered")
	}
	for _, season := range []string{"Winter", "Spring", "Summer", "Autumn"} {
		if !strings.Contains(body, season) {
			t.Errorf("expected season %s in seasonal table", season)
		}
	}
}

func TestIndexPage_NotFound(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestStore(t), "8080")

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAPIDaily(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)
	want := storeSimulatedRun(t, s)
	srv := api.NewServer(s, "8080")

	req := httptest.NewRequest("GET", "/api/daily", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got []models.DailyResult
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(want) {
		t.Errorf("daily records = %d, want %d", len(got), len(want))
	}
}

func TestAPIMonthly(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)
	storeSimulatedRun(t, s)
	srv := api.NewServer(s, "8080")

	req := httptest.NewRequest("GET", "/api/monthly", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got []models.MonthlySummary
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 12 {
		t.Errorf("monthly summaries = %d, want 12", len(got))
	}
}

func TestAPISeasonal(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)
	storeSimulatedRun(t, s)
	srv := api.NewServer(s, "8080")

	req := httptest.NewRequest("GET", "/api/seasonal", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got []models.SeasonalSummary
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("seasonal summaries = %d, want 4", len(got))
	}
}

func TestAPIStats(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)
	results := storeSimulatedRun(t, s)
	srv := api.NewServer(s, "8080")

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.YearStats
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := aggregate.Stats(results)
	if diff := got.AnnualProductionLiters - want.AnnualProductionLiters; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("annual production = %v, want %v", got.AnnualProductionLiters, want.AnnualProductionLiters)
	}
}

func TestAPIEndpoints_NoData(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestStore(t), "8080")

	for _, path := range []string{"/api/daily", "/api/monthly", "/api/seasonal", "/api/stats"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		if w.Code != 404 {
			t.Errorf("%s: expected 404 with no runs, got %d", path, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestStore(t), "8080")

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("expected default runtime metrics in exposition")
	}
}
