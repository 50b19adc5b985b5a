// Package middleware provides net/http middleware for the playground server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request metrics
//   - Structured request logging with log/slog
//
// All three are plain func(http.Handler) http.Handler values and compose
// with chi:
//
//	r := chi.NewRouter()
//	r.Use(chimw.RequestID)
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("playground")))
//	mw, _ := middleware.Prometheus(middleware.WithRegistry(reg))
//	r.Use(mw)
//	r.Use(middleware.Logger(logger))
//
// # OpenTelemetry Middleware
//
// Spans are named after the chi route pattern ("POST /signals/{name}") and
// carry method, path, request id and status code. The span is stored in
// the request context; handlers fetch it with SpanFromRequest.
//
// # Prometheus Metrics
//
// Route labels use the chi pattern rather than the raw path, keeping label
// cardinality bounded.
package middleware
