package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with defaults applied.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithMaxDepth sets the parser nesting limit.
func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.cfg.Parser.MaxDepth = depth
	return b
}

// WithPrinterFormat sets the output format.
func (b *ConfigBuilder) WithPrinterFormat(format string) *ConfigBuilder {
	b.cfg.Printer.Format = format
	return b
}

// WithLogLevel sets the logging level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithMetrics enables metrics on the given address.
func (b *ConfigBuilder) WithMetrics(addr string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = true
	b.cfg.Telemetry.Metrics.ListenAddress = addr
	return b
}

// WithTracing enables tracing to the given endpoint.
func (b *ConfigBuilder) WithTracing(endpoint string) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = true
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	return b
}

// WithHistory enables build history with the given backend.
func (b *ConfigBuilder) WithHistory(backend string) *ConfigBuilder {
	b.cfg.History.Enabled = true
	b.cfg.History.Backend = backend
	return b
}

// WithPruneSchedule sets the retention cron expression.
func (b *ConfigBuilder) WithPruneSchedule(schedule string) *ConfigBuilder {
	b.cfg.History.Retention.PruneSchedule = schedule
	return b
}

// WithDebounce sets the watch debounce period.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}
