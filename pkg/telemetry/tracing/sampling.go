package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// createSampler creates a sampler for the given ratio. A ratio of 1 samples
// every build and 0 samples none; anything between samples by trace ID hash.
//
// The sampler is wrapped in ParentBased so a span started under a sampled
// parent is always sampled.
func createSampler(ratio float64) (sdktrace.Sampler, error) {
	var baseSampler sdktrace.Sampler

	switch {
	case ratio < 0.0 || ratio > 1.0:
		return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
	case ratio == 1.0:
		baseSampler = sdktrace.AlwaysSample()
	case ratio == 0.0:
		baseSampler = sdktrace.NeverSample()
	default:
		baseSampler = sdktrace.TraceIDRatioBased(ratio)
	}

	return sdktrace.ParentBased(baseSampler), nil
}
