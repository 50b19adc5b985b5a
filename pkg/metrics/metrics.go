package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace prefixes every metric (default: "declarative").
	Namespace string

	// ConstLabels are attached to every metric.
	ConstLabels prometheus.Labels

	// Registry receives the collectors (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) Option {
	return func(c *Config) { c.Namespace = ns }
}

// WithConstLabels sets constant labels.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithRegistry sets the registerer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = r }
}

// Collector holds the module's metrics.
type Collector struct {
	Evaluations        *prometheus.CounterVec
	BranchSelections   *prometheus.CounterVec
	PortalWrites       prometheus.Counter
	PortalSlots        prometheus.Gauge
	ValidationFailures *prometheus.CounterVec
	Broadcasts         prometheus.Counter
	LiveClients        prometheus.Gauge
}

// New registers a collector set.
func New(opts ...Option) *Collector {
	cfg := Config{
		Namespace: "declarative",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	f := promauto.With(cfg.Registry)

	return &Collector{
		Evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "evaluations_total",
			Help:        "Reactive region evaluations by construct",
			ConstLabels: cfg.ConstLabels,
		}, []string{"construct"}),
		BranchSelections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "branch_selections_total",
			Help:        "Conditional branches selected by kind",
			ConstLabels: cfg.ConstLabels,
		}, []string{"kind"}),
		PortalWrites: f.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "portal_writes_total",
			Help:        "Portal input writes",
			ConstLabels: cfg.ConstLabels,
		}),
		PortalSlots: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "portal_slots",
			Help:        "Portal slots alive across all providers",
			ConstLabels: cfg.ConstLabels,
		}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "validation_failures_total",
			Help:        "Rejected branch lists by error code",
			ConstLabels: cfg.ConstLabels,
		}, []string{"code"}),
		Broadcasts: f.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "playground_broadcasts_total",
			Help:        "Rendered pages pushed to live clients",
			ConstLabels: cfg.ConstLabels,
		}),
		LiveClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "playground_clients",
			Help:        "Connected live clients",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

var (
	globalMu sync.RWMutex
	global   *Collector
)

// Install makes c the collector the Record functions report to. Passing nil
// turns recording off.
func Install(c *Collector) {
	globalMu.Lock()
	global = c
	globalMu.Unlock()
}

// Installed returns the active collector, or nil.
func Installed() *Collector {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// RecordEvaluation counts one evaluation of a reactive region.
func RecordEvaluation(construct string) {
	if c := Installed(); c != nil {
		c.Evaluations.WithLabelValues(construct).Inc()
	}
}

// RecordSelection counts a selected branch kind ("then", "elseif", "else",
// "none").
func RecordSelection(kind string) {
	if c := Installed(); c != nil {
		c.BranchSelections.WithLabelValues(kind).Inc()
	}
}

// RecordPortalWrite counts a portal input write.
func RecordPortalWrite() {
	if c := Installed(); c != nil {
		c.PortalWrites.Inc()
	}
}

// RecordPortalSlots adjusts the live slot gauge by delta.
func RecordPortalSlots(delta int) {
	if c := Installed(); c != nil {
		c.PortalSlots.Add(float64(delta))
	}
}

// RecordValidationFailure counts a rejected branch list.
func RecordValidationFailure(code string) {
	if c := Installed(); c != nil {
		c.ValidationFailures.WithLabelValues(code).Inc()
	}
}

// RecordBroadcast counts a page pushed to live clients.
func RecordBroadcast() {
	if c := Installed(); c != nil {
		c.Broadcasts.Inc()
	}
}

// RecordClients adjusts the live client gauge by delta.
func RecordClients(delta int) {
	if c := Installed(); c != nil {
		c.LiveClients.Add(float64(delta))
	}
}
