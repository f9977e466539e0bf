// Package telemetry provides Prometheus metrics for the interlock.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the interlock.
// Pass to components that need to record metrics.
type Metrics struct {
	Evaluations       *prometheus.CounterVec
	EvaluationSeconds prometheus.Histogram
	HistoryDrops      prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Evaluations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "interlock",
				Name:      "evaluations_total",
				Help:      "Total guarded calls evaluated",
			},
			[]string{"outcome"}, // outcome=executed/blocked/raised/simulated
		),
		EvaluationSeconds: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "interlock",
				Name:      "evaluation_duration_seconds",
				Help:      "Guarded call duration in seconds, including the action when it runs",
				Buckets:   prometheus.DefBuckets,
			},
		),
		HistoryDrops: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "interlock",
				Name:      "history_drops_total",
				Help:      "Total evaluation records dropped because the history store failed",
			},
		),
	}
}
