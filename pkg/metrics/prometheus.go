// Package metrics provides Prometheus metrics for the wait-time prediction
// service on a package-owned registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "queuesmart",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "queuesmart",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})

	predictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "queuesmart",
		Name:      "predictions_total",
		Help:      "Total successful wait-time predictions.",
	})

	predictionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "queuesmart",
		Name:      "prediction_errors_total",
		Help:      "Total failed prediction attempts.",
	})

	predictionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "queuesmart",
		Name:      "prediction_latency_ms",
		Help:      "End-to-end prediction latency in milliseconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50},
	})

	predictedWaitMinutes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "queuesmart",
		Name:      "predicted_wait_minutes",
		Help:      "Distribution of predicted wait times in minutes.",
		Buckets:   []float64{0, 1, 2, 5, 10, 15, 30, 60, 120},
	})

	modelLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "queuesmart",
		Name:      "model_loaded",
		Help:      "1 when a model artifact is loaded and serving, 0 otherwise.",
	})

	systemGoroutines = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "queuesmart",
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})

	systemMemoryBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "queuesmart",
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes.",
	})
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		predictionsTotal,
		predictionErrorsTotal,
		predictionLatency,
		predictedWaitMinutes,
		modelLoaded,
		systemGoroutines,
		systemMemoryBytes,
	)
}

// GetRegistry returns the package registry for HTTP exposition.
func GetRegistry() *prometheus.Registry { return registry }

// RecordHTTPRequest counts one handled request.
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one request's duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordPrediction records one successful prediction.
func RecordPrediction(waitMinutes, latencyMs float64) {
	predictionsTotal.Inc()
	predictedWaitMinutes.Observe(waitMinutes)
	predictionLatency.Observe(latencyMs)
}

// RecordPredictionError counts one failed prediction attempt.
func RecordPredictionError() {
	predictionErrorsTotal.Inc()
}

// UpdateModelLoaded flips the model-ready gauge.
func UpdateModelLoaded(loaded bool) {
	if loaded {
		modelLoaded.Set(1)
	} else {
		modelLoaded.Set(0)
	}
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	systemGoroutines.Set(float64(count))
}

// UpdateSystemMemoryUsage updates the heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	systemMemoryBytes.Set(float64(bytes))
}
