// Package metrics provides Prometheus metrics for AST builds.
//
// # Metrics
//
//   - stlc_parser_builds_total{outcome,kind}: builds by outcome and error kind
//   - stlc_parser_build_duration_seconds{outcome}: build latency
//   - stlc_parser_ast_nodes: size of built trees
//   - stlc_watch_rebuilds_total{event}: rebuilds triggered in watch mode
//   - stlc_history_pruned_records_total: history records removed by retention
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	p := parser.NewParser().WithMetrics(collector)
//
// Watch mode serves Handler on the configured listen address. One-shot
// commands can write the registry to a file for the node_exporter textfile
// collector with WriteTextfile.
package metrics
