package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimulationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solstill_simulation_runs_total",
			Help: "Total simulation runs",
		},
		[]string{"status"},
	)

	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solstill_simulation_duration_seconds",
			Help:    "Annual simulation wall time in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReportsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solstill_reports_written_total",
			Help: "Report files written, by format",
		},
		[]string{"format"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solstill_api_requests_total",
			Help: "API requests served",
		},
		[]string{"endpoint"},
	)
)
