package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for store operations.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Skipped    prometheus.Counter
}

// NewMetrics creates the store collectors and registers them on reg when it
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsstore_operations_total",
				Help: "Store operations by kind and outcome",
			},
			[]string{"op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fsstore_operation_duration_seconds",
				Help:    "Store operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsstore_list_skipped_total",
			Help: "Record files skipped while listing a namespace",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration, m.Skipped)
	}
	return m
}

// observe records one operation. errp points at the operation's named error
// result so the outcome is read after the function returns.
func (m *Metrics) observe(op string, start time.Time, errp *error) {
	if m == nil {
		return
	}
	result := "ok"
	if *errp != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(op, result).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) skip() {
	if m == nil {
		return
	}
	m.Skipped.Inc()
}
