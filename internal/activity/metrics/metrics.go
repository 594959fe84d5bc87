package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the activity domain.
type Metrics struct {
	EventsLogged prometheus.Counter
	ViewDuration *prometheus.HistogramVec
}

// New creates and registers the activity metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		EventsLogged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parlo_practice_events_logged_total",
			Help: "Total number of practice events inserted",
		}),
		ViewDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parlo_activity_view_duration_seconds",
			Help:    "Latency of activity view queries by view name",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"view"}),
	}
}

// RecordEventsLogged adds n to the logged-events counter.
func (m *Metrics) RecordEventsLogged(n int) {
	if m == nil {
		return
	}
	m.EventsLogged.Add(float64(n))
}

// ObserveView records the duration of one view query in seconds.
func (m *Metrics) ObserveView(view string, seconds float64) {
	if m == nil {
		return
	}
	m.ViewDuration.WithLabelValues(view).Observe(seconds)
}
