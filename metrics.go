package gesturekit

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a Stage updates. Attach with
// Stage.SetMetrics.
type Metrics struct {
	Gestures    *prometheus.CounterVec // labels: kind, phase
	Taps        prometheus.Counter
	Resets      *prometheus.CounterVec // labels: animated
	Interacting prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Gestures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gesturekit",
			Name:      "gestures_total",
			Help:      "Gesture reports applied to entities, by kind and phase.",
		}, []string{"kind", "phase"}),
		Taps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gesturekit",
			Name:      "taps_total",
			Help:      "Taps recognized on entities.",
		}),
		Resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gesturekit",
			Name:      "resets_total",
			Help:      "Returns to the rest transform, animated or immediate.",
		}, []string{"animated"}),
		Interacting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gesturekit",
			Name:      "entities_interacting",
			Help:      "Entities with a live transform gesture.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Gestures, m.Taps, m.Resets, m.Interacting)
	}
	return m
}

func (m *Metrics) observeReset(animated bool) {
	m.Resets.WithLabelValues(strconv.FormatBool(animated)).Inc()
}
