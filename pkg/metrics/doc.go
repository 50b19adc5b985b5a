// Package metrics exposes Prometheus collectors for the declarative
// runtime.
//
//	reg := prometheus.NewRegistry()
//	metrics.Install(metrics.New(metrics.WithRegistry(reg)))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Until Install is called every Record function is a no-op.
//
// Metrics:
//   - declarative_evaluations_total{construct}
//   - declarative_branch_selections_total{kind}
//   - declarative_portal_writes_total
//   - declarative_portal_slots
//   - declarative_validation_failures_total{code}
//   - declarative_playground_broadcasts_total
//   - declarative_playground_clients
package metrics
