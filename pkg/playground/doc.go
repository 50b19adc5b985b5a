// Package playground serves the demo dashboard over HTTP and pushes every
// re-render to connected browsers over a WebSocket.
//
// One Session goroutine owns the reactive graph. HTTP handlers submit
// signal writes to it through Session.Do; the write re-evaluates the
// affected regions, the root effect renders the page again and the Hub
// broadcasts the new frame.
//
// Routes:
//
//	GET  /                 the page shell with the current frame
//	GET  /ws               live frames as JSON messages
//	GET  /signals          signal state
//	POST /signals/{name}   value=true|false|toggle (default toggle)
//	GET  /healthz          liveness
//	GET  /metrics          Prometheus metrics, when enabled
package playground
