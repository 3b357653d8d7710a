package main

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"gymfuel/recommend-api/internal/recommend"
)

var (
	metricsOnce sync.Once

	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymfuel",
			Name:      "recommendations_total",
			Help:      "Recommendations served, including preview cache hits, by category and outcome.",
		},
		[]string{"category", "outcome"},
	)

	previewCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymfuel",
			Name:      "preview_cache_lookups_total",
			Help:      "Preview cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)
)

// registerMetrics registers collectors with the default registry (idempotent).
func registerMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(recommendationsTotal, previewCacheLookups)
	})
}

// observeRecommendation counts one engine evaluation. Invalid input is
// labelled "invalid" for both labels so caller-supplied strings never become
// label values.
func observeRecommendation(c recommend.Category, b recommend.Breakdown, err error) {
	switch {
	case err != nil:
		recommendationsTotal.WithLabelValues("invalid", "invalid").Inc()
	case !b.Complete:
		recommendationsTotal.WithLabelValues(string(c), "incomplete").Inc()
	default:
		recommendationsTotal.WithLabelValues(string(c), "complete").Inc()
	}
}
