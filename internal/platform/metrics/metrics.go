// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus instruments for the catalog core.
//
// Collectors are registered once on the default registry through promauto and
// served by promhttp on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MutationsTotal counts coordinator operations by outcome code.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Subsystem: "catalog",
			Name:      "mutations_total",
			Help:      "Total number of catalog mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// MutationDuration observes the wall time of each coordinator operation.
	MutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Subsystem: "catalog",
			Name:      "mutation_duration_seconds",
			Help:      "Catalog mutation duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// CatalogItems reports the size of the in-memory catalog.
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cinedex",
			Subsystem: "catalog",
			Name:      "items",
			Help:      "Number of items held by the in-memory catalog",
		},
	)

	// BreakerState reports the gateway circuit breaker state (0 closed, 1 half-open, 2 open).
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cinedex",
			Subsystem: "gateway",
			Name:      "breaker_state",
			Help:      "Remote gateway circuit breaker state",
		},
		[]string{"name"},
	)
)

// Recorder reports coordinator outcomes to Prometheus.
type Recorder struct{}

// NewRecorder returns the Prometheus-backed recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Mutation records one finished operation.
func (Recorder) Mutation(operation, outcome string, elapsed time.Duration) {
	MutationsTotal.WithLabelValues(operation, outcome).Inc()
	MutationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// CatalogSize records the current item count.
func (Recorder) CatalogSize(count int) {
	CatalogItems.Set(float64(count))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
