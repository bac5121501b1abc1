package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelayRequests counts finished relay requests by outcome (minted or the failure kind)
	RelayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_relay_requests_total",
			Help: "Total number of relay requests by outcome",
		},
		[]string{"outcome"},
	)

	// RelayStepLatency tracks how long each workflow state took
	RelayStepLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prism_relay_step_seconds",
			Help:    "Relay workflow step latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"state"},
	)

	// RecipientFallbacks counts colors whose royalty recipient fell back to the default address
	RecipientFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_recipient_fallbacks_total",
			Help: "Colors resolved to the fallback address, by reason",
		},
		[]string{"reason"},
	)

	// ArtworkRequests counts artwork generations by outcome
	ArtworkRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_artwork_requests_total",
			Help: "Total number of artwork generation requests by outcome",
		},
		[]string{"outcome"},
	)

	// ExternalCalls tracks calls to outside services
	ExternalCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prism_external_calls_total",
			Help: "Total number of calls to external services",
		},
		[]string{"service", "method", "result"},
	)

	// ExternalLatency tracks latency of calls to outside services
	ExternalLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prism_external_latency_seconds",
			Help:    "External call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)
)

// ObserveExternal records one call to an external dependency.
func ObserveExternal(service, method string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ExternalCalls.WithLabelValues(service, method, result).Inc()
	ExternalLatency.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
}
