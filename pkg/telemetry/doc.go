// Package telemetry groups the observability packages used by the stlc
// command line.
//
//   - logging: slog construction from config and build correlation IDs
//   - metrics: Prometheus counters and histograms for builds, rebuilds and
//     history pruning, served over HTTP in watch mode or written as a
//     node_exporter textfile
//   - tracing: OpenTelemetry spans around each parser build, exported over
//     OTLP/gRPC when enabled
//   - health: liveness, readiness and version probes mounted next to the
//     metrics endpoint
//
// Every package is usable with its zero configuration: metrics and tracing
// are no-ops until enabled.
package telemetry
