package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pycourse_executions_total",
			Help: "Total number of code executions",
		},
		[]string{"status"}, // success, runtime_error, timeout, internal_error
	)

	ExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pycourse_execution_duration_ms",
			Help:    "Execution duration in milliseconds",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
	)

	ActiveExecutions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pycourse_active_executions",
			Help: "Number of code executions currently running",
		},
	)

	TruncatedOutputs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pycourse_truncated_outputs_total",
			Help: "Total number of executions whose output hit the size cap",
		},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pycourse_test_submissions_total",
			Help: "Total number of graded test submissions",
		},
		[]string{"passed"},
	)

	SubmissionPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pycourse_test_submission_percentage",
			Help:    "Distribution of submission percentages",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pycourse_rate_limit_hits_total",
			Help: "Total number of requests rejected by rate limiter",
		},
	)
)
