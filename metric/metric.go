// Package metric exposes Prometheus collectors for term map loading.
package metric

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "semmap"

// Collector holds Prometheus metrics for term map validation. A nil *Collector is
// valid and records nothing.
type Collector struct {
	// Construction counters
	built    *prometheus.CounterVec // By role and map_type
	rejected *prometheus.CounterVec // By role and kind

	// Load metrics
	loadDuration prometheus.Histogram
	filesLoaded  prometheus.Counter
}

// NewCollector creates and registers the term map metrics with reg. A nil reg
// disables metrics and returns a nil Collector.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		return nil, nil // Metrics disabled
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		built: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "termmap",
			Name:      "built_total",
			Help:      "Total number of term maps that passed validation",
		}, []string{"role", "map_type"}),

		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "termmap",
			Name:      "rejected_total",
			Help:      "Total number of term maps rejected during validation",
		}, []string{"role", "kind"}), // kind: structural, syntax, data

		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "duration_seconds",
			Help:      "Mapping specification load duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		filesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "files_total",
			Help:      "Total number of record files read",
		}),
	}

	var err error
	if c.built, err = register(reg, c.built); err != nil {
		return nil, err
	}
	if c.rejected, err = register(reg, c.rejected); err != nil {
		return nil, err
	}
	if c.loadDuration, err = register(reg, c.loadDuration); err != nil {
		return nil, err
	}
	if c.filesLoaded, err = register(reg, c.filesLoaded); err != nil {
		return nil, err
	}
	return c, nil
}

// register adds col to reg. When an identical collector is already registered,
// as happens when a watch loop rebuilds its pipeline, the existing one is reused.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, err
}

// RecordBuilt counts a successfully built term map.
func (c *Collector) RecordBuilt(role, mapType string) {
	if c == nil {
		return
	}
	c.built.WithLabelValues(role, mapType).Inc()
}

// RecordRejected counts a term map rejected with the given error kind.
func (c *Collector) RecordRejected(role, kind string) {
	if c == nil {
		return
	}
	c.rejected.WithLabelValues(role, kind).Inc()
}

// RecordLoad observes one finished load over files record files.
func (c *Collector) RecordLoad(duration time.Duration, files int) {
	if c == nil {
		return
	}
	c.loadDuration.Observe(duration.Seconds())
	if files > 0 {
		c.filesLoaded.Add(float64(files))
	}
}
