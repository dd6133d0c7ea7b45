package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lambda-hq/stlc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus registry and every metric the stlc command
// exports. All Record methods are no-ops when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Build metrics
	buildMetrics *BuildMetrics

	// Watch mode rebuilds
	watchRebuilds *prometheus.CounterVec

	// History records removed by retention
	historyPruned prometheus.Counter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "stlc",
//		Subsystem: "parser",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:       cfg,
		registry:     registry,
		buildMetrics: NewBuildMetrics(cfg, registry),

		watchRebuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "rebuilds_total",
				Help:      "Total number of rebuilds triggered by file changes",
			},
			[]string{"event"},
		),

		historyPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "history",
				Name:      "pruned_records_total",
				Help:      "Total number of build history records removed by retention",
			},
		),
	}

	registry.MustRegister(c.watchRebuilds, c.historyPruned)

	return c
}

// RecordBuild records metrics for a finished build.
//
// Parameters:
//   - outcome: "success" or "failure"
//   - kind: error kind of a failed build, empty on success
//   - duration: build duration
//   - nodes: node count of the built tree
func (c *Collector) RecordBuild(outcome, kind string, duration time.Duration, nodes int) {
	if !c.config.Enabled {
		return
	}

	c.buildMetrics.RecordBuild(outcome, kind, duration, nodes)
}

// RecordRebuild records a rebuild triggered by a file event
// ("create", "write", "rename", "remove").
func (c *Collector) RecordRebuild(event string) {
	if !c.config.Enabled {
		return
	}

	c.watchRebuilds.WithLabelValues(event).Inc()
}

// RecordPruned records history records removed by a retention run.
func (c *Collector) RecordPruned(n int64) {
	if !c.config.Enabled || n <= 0 {
		return
	}

	c.historyPruned.Add(float64(n))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Enabled reports whether metrics are recorded.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// WriteTextfile writes the current metrics to path in the Prometheus text
// format, for the node_exporter textfile collector. The file is replaced
// atomically.
func (c *Collector) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}
