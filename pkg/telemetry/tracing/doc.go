// Package tracing provides OpenTelemetry tracing for builds.
//
// Each build run through the parser produces one span named after the entry
// point (stlc.parse, stlc.parse_tree, stlc.build) carrying the build ID,
// the source name, and either the node count or the error kind.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: "localhost:4317"
//	    insecure: true
//	    sample_ratio: 1.0
//	    service_name: "stlc"
//
// Spans are exported over OTLP gRPC in batches. When tracing is disabled the
// tracer is a noop and spans cost nothing beyond the call.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	p := parser.NewParser().WithTracer(tracer.Tracer())
package tracing
