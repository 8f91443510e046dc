// Package metrics provides Prometheus instrumentation for seqflow pipelines.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "seqflow"

// Registry holds all metric instances for seqflow components.
type Registry struct {
	// Pipeline evaluation
	Evaluations        *prometheus.CounterVec
	ElementsPulled     *prometheus.CounterVec
	Errors             *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	ParallelChunks     *prometheus.CounterVec

	// Fork/join worker pool
	WorkerPoolActive *prometheus.GaugeVec
	WorkerTasks      *prometheus.CounterVec
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry bound to prometheus.DefaultRegisterer, creating it on
// first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
	})
	return defaultRegistry
}

// NewRegistry creates a registry with the default namespace on reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Registry: reg, Namespace: DefaultNamespace})
}

// NewRegistryWithConfig creates a registry honoring cfg.Namespace and cfg.Labels.
// A nil cfg.Registry means prometheus.DefaultRegisterer.
func NewRegistryWithConfig(cfg Config) *Registry {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "evaluations_total",
				Help:        "Total number of terminal operations evaluated",
				ConstLabels: cfg.Labels,
			},
			[]string{"terminal", "mode"},
		),

		ElementsPulled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "elements_pulled_total",
				Help:        "Total number of elements pulled from pipeline sources",
				ConstLabels: cfg.Labels,
			},
			[]string{"terminal"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "errors_total",
				Help:        "Total number of failed evaluations by error code",
				ConstLabels: cfg.Labels,
			},
			[]string{"terminal", "code"},
		),

		EvaluationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "evaluation_duration_seconds",
				Help:        "Time spent evaluating a terminal operation",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: cfg.Labels,
			},
			[]string{"terminal"},
		),

		ParallelChunks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "parallel_chunks_total",
				Help:        "Total number of source chunks evaluated in parallel mode",
				ConstLabels: cfg.Labels,
			},
			[]string{"terminal"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "workerpool",
				Name:        "active_workers",
				Help:        "Number of workers currently executing tasks",
				ConstLabels: cfg.Labels,
			},
			[]string{"pool_name"},
		),

		WorkerTasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "workerpool",
				Name:        "tasks_total",
				Help:        "Total number of tasks executed by status",
				ConstLabels: cfg.Labels,
			},
			[]string{"pool_name", "status"},
		),
	}
}
