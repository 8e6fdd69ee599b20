// Package metrics exposes edit pipeline measurements as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EditMetrics = (*EditMetrics)(nil)

const namespace = "scenaria"

// methodNone labels locate attempts that found nothing
const methodNone = "none"

// EditMetrics implements driven.EditMetrics with Prometheus collectors
type EditMetrics struct {
	locateTotal      *prometheus.CounterVec
	locateDuration   *prometheus.HistogramVec
	locateConfidence prometheus.Histogram
	applyTotal       *prometheus.CounterVec
}

// NewEditMetrics registers the edit collectors with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewEditMetrics(reg prometheus.Registerer) *EditMetrics {
	factory := promauto.With(reg)

	return &EditMetrics{
		locateTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locate_total",
			Help:      "Fragment relocation attempts by the strategy that matched",
		}, []string{"method"}),
		locateDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "locate_duration_seconds",
			Help:      "Time spent relocating a fragment",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method"}),
		locateConfidence: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "locate_confidence",
			Help:      "Confidence of successful relocations",
			Buckets:   []float64{0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 0.99, 1},
		}),
		applyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_apply_total",
			Help:      "Edit application attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveLocate records one relocation attempt
func (m *EditMetrics) ObserveLocate(method domain.MatchMethod, confidence float64, elapsed time.Duration) {
	label := string(method)
	if label == "" {
		label = methodNone
	}

	m.locateTotal.WithLabelValues(label).Inc()
	m.locateDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	if method != "" {
		m.locateConfidence.Observe(confidence)
	}
}

// ObserveApply records one apply attempt by outcome
func (m *EditMetrics) ObserveApply(outcome string) {
	m.applyTotal.WithLabelValues(outcome).Inc()
}
