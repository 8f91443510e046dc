// Package metrics provides Prometheus instrumentation for seqflow components.
//
// # Overview
//
// Metrics cover pipeline evaluation (terminal operations run, elements pulled
// from sources, failures by error code, evaluation latency, parallel chunks)
// and the fork/join worker pool behind parallel mode.
//
// # Quick Start
//
// Enable metrics for all streams with a dedicated registry:
//
//	reg := prometheus.NewRegistry()
//	stream.EnableMetrics(metrics.Config{Enabled: true, Registry: reg})
//
// Then expose them via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Custom Registry
//
// A registry per component avoids duplicate registration panics in tests:
//
//	registry := metrics.NewRegistry(prometheus.NewRegistry())
//	registry.Evaluations.WithLabelValues("count", "sequential").Inc()
package metrics
