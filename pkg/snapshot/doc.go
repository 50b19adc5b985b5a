// Package snapshot publishes rendered pages to Amazon S3 or any
// S3-compatible store.
//
// Keys are prefix + name + ".html". Uploads and listings are traced with
// OpenTelemetry and failures are returned as E140 errors.
package snapshot
