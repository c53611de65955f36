// Package metrics exposes Prometheus collectors for the habit service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HabitMutations counts successful store mutations by operation.
	HabitMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_mutations_total",
			Help: "Total number of habit store mutations",
		},
		[]string{"op"}, // op: add, remove, rename, toggle, replace
	)

	// KVSaveDuration tracks persistence latency per backend.
	KVSaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_kv_save_duration_seconds",
			Help:    "Key-value save latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"backend", "status"},
	)

	// KVLoads counts document loads by backend and outcome.
	KVLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_kv_loads_total",
			Help: "Total number of key-value loads",
		},
		[]string{"backend", "result"}, // result: hit, miss, error
	)

	// HTTPRequestDuration tracks API latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

func RecordMutation(op string) {
	HabitMutations.WithLabelValues(op).Inc()
}

func RecordKVSave(backend string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	KVSaveDuration.WithLabelValues(backend, status).Observe(duration.Seconds())
}

func RecordKVLoad(backend, result string) {
	KVLoads.WithLabelValues(backend, result).Inc()
}

func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
