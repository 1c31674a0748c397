// Package metrics exposes Prometheus instrumentation for scan
// activity: ping outcomes, in-flight worker count, and ping latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PingOutcomesTotal counts completed ping attempts by their
	// classified outcome (Success, TimedOut, MalformedResponse, etc.).
	PingOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "serverseeker",
		Name:      "ping_outcomes_total",
		Help:      "Total number of completed ping attempts, labeled by outcome.",
	}, []string{"outcome"})

	// WorkersInFlight tracks the number of ping workers currently
	// holding a semaphore permit.
	WorkersInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "serverseeker",
		Name:      "workers_in_flight",
		Help:      "Number of ping worker goroutines currently executing.",
	})

	// PingLatencySeconds observes the wall-clock duration of the full
	// modern-then-legacy ping sequence per target.
	PingLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "serverseeker",
		Name:      "ping_latency_seconds",
		Help:      "Observed duration of a full ping attempt against a target.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObserveWorkerStart increments the in-flight gauge and returns a
// function that decrements it; call the returned function when the
// worker finishes, typically via defer.
func ObserveWorkerStart() func() {
	WorkersInFlight.Inc()
	return WorkersInFlight.Dec
}
