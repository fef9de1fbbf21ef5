// Package api serves the simulation results: an HTML report page, a JSON
// API over the stored runs and Prometheus metrics.
package api

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/solstill/internal/aggregate"
	"github.com/lox/solstill/internal/metrics"
	"github.com/lox/solstill/internal/models"
	"github.com/lox/solstill/internal/store"
)

//go:embed templates/*
var templateFS embed.FS

type Server struct {
	store *store.Store
	port  string
	tmpl  *template.Template
}

func NewServer(store *store.Store, port string) *Server {
	funcs := template.FuncMap{
		"pct": func(f float64) float64 { return f * 100 },
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

	return &Server{
		store: store,
		port:  port,
		tmpl:  tmpl,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/daily", s.handleAPIDaily)
	mux.HandleFunc("/api/monthly", s.handleAPIMonthly)
	mux.HandleFunc("/api/seasonal", s.handleAPISeasonal)
	mux.HandleFunc("/api/stats", s.handleAPIStats)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// latestRunData loads the most recent stored run and its daily series.
// Returns a nil run when no simulation has been stored yet.
func (s *Server) latestRunData() (*store.Run, []models.DailyResult, error) {
	run, err := s.store.LatestRun()
	if err != nil {
		return nil, nil, err
	}
	if run == nil {
		return nil, nil, nil
	}
	results, err := s.store.GetDailyResults(run.ID)
	if err != nil {
		return nil, nil, err
	}
	return run, results, nil
}

// IndexData feeds the report page template.
type IndexData struct {
	Run      *store.Run
	Stats    models.YearStats
	Monthly  []models.MonthlySummary
	Seasonal []models.SeasonalSummary
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	metrics.APIRequests.WithLabelValues("index").Inc()

	run, results, err := s.latestRunData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := IndexData{Run: run}
	if run != nil {
		data.Stats = aggregate.Stats(results)
		data.Seasonal = aggregate.Seasonal(results)
		monthly, err := s.store.GetMonthlySummaries(run.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Monthly = monthly
	}

	if err := s.tmpl.ExecuteTemplate(w, "report.html", data); err != nil {
		log.Printf("template error: %v", err)
	}
}

type HealthStatus struct {
	Status    string     `json:"status"`
	Runs      int        `json:"runs"`
	LatestRun *time.Time `json:"latest_run,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	metrics.APIRequests.WithLabelValues("health").Inc()

	count, err := s.store.CountRuns()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
		return
	}

	health := HealthStatus{Status: "ok", Runs: count}
	if count == 0 {
		health.Status = "empty"
	} else if run, err := s.store.LatestRun(); err == nil && run != nil {
		health.LatestRun = &run.CreatedAt
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		log.Printf("health: write response: %v", err)
	}
}

func (s *Server) handleAPIDaily(w http.ResponseWriter, r *http.Request) {
	metrics.APIRequests.WithLabelValues("daily").Inc()

	run, results, err := s.latestRunData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no simulation runs stored", http.StatusNotFound)
		return
	}
	writeJSON(w, results)
}

func (s *Server) handleAPIMonthly(w http.ResponseWriter, r *http.Request) {
	metrics.APIRequests.WithLabelValues("monthly").Inc()

	run, err := s.store.LatestRun()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no simulation runs stored", http.StatusNotFound)
		return
	}
	monthly, err := s.store.GetMonthlySummaries(run.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, monthly)
}

func (s *Server) handleAPISeasonal(w http.ResponseWriter, r *http.Request) {
	metrics.APIRequests.WithLabelValues("seasonal").Inc()

	run, results, err := s.latestRunData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no simulation runs stored", http.StatusNotFound)
		return
	}
	writeJSON(w, aggregate.Seasonal(results))
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	metrics.APIRequests.WithLabelValues("stats").Inc()

	run, results, err := s.latestRunData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no simulation runs stored", http.StatusNotFound)
		return
	}
	writeJSON(w, aggregate.Stats(results))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}
