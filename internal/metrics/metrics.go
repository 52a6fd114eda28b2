// Package metrics exposes board operation counters for Prometheus
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/thenoetrevino/kanban/internal/models"
)

const namespace = "kanban"

// Metrics tracks task operations. A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	moves      *prometheus.CounterVec
	shifted    *prometheus.CounterVec
	conflicts  *prometheus.CounterVec
	cache      *prometheus.CounterVec
	StartTime  time.Time
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of task operations broken down by operation and result.",
		}, []string{"operation", "result"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency distribution for task operations, retries included.",
			Buckets: []float64{
				0.0005, 0.001, 0.005,
				0.01, 0.05, 0.1,
				0.5, 1, 5,
			},
		}, []string{"operation"}),
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Total number of committed moves broken down by kind.",
		}, []string{"kind"}),
		shifted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shifted_rows_total",
			Help:      "Total number of rows whose position changed as a side effect of another task.",
		}, []string{"strategy"}),
		conflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "conflicts_total",
			Help:      "Total number of aborted transactions broken down by outcome (retried or surfaced).",
		}, []string{"outcome"}),
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Total number of list cache lookups broken down by hit/miss.",
		}, []string{"result"}),
		StartTime: time.Now(),
	}
}

// ObserveOperation records the outcome and latency of one service call
func (m *Metrics) ObserveOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, resultLabel(err)).Inc()
	m.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveMove records a committed move and the rows it shifted
func (m *Metrics) ObserveMove(kind, strategy string, shifted int64) {
	if m == nil {
		return
	}
	m.moves.WithLabelValues(kind).Inc()
	m.AddShifted(strategy, shifted)
}

// AddShifted records rows moved by compaction or reinsertion
func (m *Metrics) AddShifted(strategy string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.shifted.WithLabelValues(strategy).Add(float64(n))
}

// IncConflict records an aborted transaction
func (m *Metrics) IncConflict(retried bool) {
	if m == nil {
		return
	}
	outcome := "surfaced"
	if retried {
		outcome = "retried"
	}
	m.conflicts.WithLabelValues(outcome).Inc()
}

// IncCache records a list cache lookup
func (m *Metrics) IncCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

// Uptime returns the time since the metrics were created
func (m *Metrics) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.StartTime)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, models.ErrTransactionConflict):
		return "conflict"
	default:
		return "error"
	}
}
