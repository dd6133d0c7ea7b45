package metrics

import (
	"time"

	"lambda-hq/stlc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// BuildMetrics tracks metrics related to AST builds.
//
// Metrics:
//   - stlc_parser_builds_total: Total builds by outcome and error kind
//   - stlc_parser_build_duration_seconds: Build duration by outcome
//   - stlc_parser_ast_nodes: Node count of successfully built trees
type BuildMetrics struct {
	// Total builds
	buildsTotal *prometheus.CounterVec

	// Build duration histogram
	buildDuration *prometheus.HistogramVec

	// Size of built trees
	astNodes prometheus.Histogram
}

// NewBuildMetrics creates and registers build metrics with the provided registry.
func NewBuildMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BuildMetrics {
	bm := &BuildMetrics{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "builds_total",
				Help:      "Total number of AST builds",
			},
			[]string{"outcome", "kind"},
		),

		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "build_duration_seconds",
				Help:      "Duration of AST builds in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
			[]string{"outcome"},
		),

		astNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ast_nodes",
				Help:      "Number of nodes in built trees",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
			},
		),
	}

	registry.MustRegister(
		bm.buildsTotal,
		bm.buildDuration,
		bm.astNodes,
	)

	return bm
}

// RecordBuild records one build. kind is empty for successful builds.
func (bm *BuildMetrics) RecordBuild(outcome, kind string, duration time.Duration, nodes int) {
	bm.buildsTotal.WithLabelValues(outcome, kind).Inc()
	bm.buildDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if nodes > 0 {
		bm.astNodes.Observe(float64(nodes))
	}
}
