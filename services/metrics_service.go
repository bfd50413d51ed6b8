package services

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_http_requests_total",
			Help: "Total HTTP requests served by the keeper",
		},
		[]string{"route"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_http_request_errors_total",
			Help: "HTTP requests answered with a 4xx or 5xx status",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keeper_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	phaseRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_phase_runs_total",
			Help: "Lifecycle phases executed, by result",
		},
		[]string{"phase", "result"},
	)

	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keeper_phase_duration_seconds",
			Help:    "Duration of lifecycle phases",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"phase"},
	)

	stepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_step_failures_total",
			Help: "Tolerated failures of best-effort steps",
		},
		[]string{"phase", "step"},
	)
)

// 本地计数器，用于健康检查接口
var (
	totalRequests     int64
	totalErrors       int64
	totalPhaseRuns    int64
	totalPhaseFailure int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestErrors)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(phaseRuns)
	prometheus.MustRegister(phaseDuration)
	prometheus.MustRegister(stepFailures)
}

// IncrementRequestCount counts one served request
func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

// RecordRequestDuration observes the duration of one request in seconds
func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

// IncrementErrorCount counts one failed request
func IncrementErrorCount(route string) {
	requestErrors.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalErrors, 1)
}

func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

// RecordPhase records the result and duration of one lifecycle phase
func RecordPhase(phase string, seconds float64, err error) {
	result := "success"
	if err != nil {
		result = "failure"
		atomic.AddInt64(&totalPhaseFailure, 1)
	}
	atomic.AddInt64(&totalPhaseRuns, 1)
	phaseRuns.WithLabelValues(phase, result).Inc()
	phaseDuration.WithLabelValues(phase).Observe(seconds)
}

// RecordStepFailure counts a tolerated step failure
func RecordStepFailure(phase, step string) {
	stepFailures.WithLabelValues(phase, step).Inc()
}

func GetTotalPhaseRuns() int64 {
	return atomic.LoadInt64(&totalPhaseRuns)
}

func GetTotalPhaseFailures() int64 {
	return atomic.LoadInt64(&totalPhaseFailure)
}
