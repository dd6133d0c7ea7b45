package config

import "time"

// Config is the root configuration structure for the stlc command.
// It contains the parser limits, printer settings, telemetry, build history
// and watch mode sections.
type Config struct {
	// Parser contains the limits applied while building source files.
	Parser ParserConfig `yaml:"parser"`

	// Printer contains the output settings for built trees.
	Printer PrinterConfig `yaml:"printer"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// History contains configuration for the build history store and its
	// retention.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for rebuild-on-change mode.
	Watch WatchConfig `yaml:"watch"`
}

// ParserConfig contains the limits applied by the parser.
type ParserConfig struct {
	// MaxFileSize is the largest source file accepted, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDepth is the maximum nesting depth of a program. Zero disables
	// the limit.
	// Default: 0
	MaxDepth int `yaml:"max_depth"`
}

// PrinterConfig contains the output settings for built trees.
type PrinterConfig struct {
	// Indent is written once per nesting level in tree output.
	// Default: "\t"
	Indent string `yaml:"indent"`

	// Format selects the output: "tree", "expr" or "json".
	// Default: "tree"
	Format string `yaml:"format"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json", "text", "console".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled turns on build metrics.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "stlc"
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component.
	// Default: "parser"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where watch mode serves the metrics endpoint.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Textfile, when set, receives the metrics in text exposition format
	// after one-shot commands. Useful with the node_exporter textfile
	// collector.
	Textfile string `yaml:"textfile"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled turns on span export.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint (host:port).
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the fraction of builds traced, between 0.0 and 1.0.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service.name resource attribute.
	// Default: "stlc"
	ServiceName string `yaml:"service_name"`
}

// HistoryConfig contains build history configuration.
type HistoryConfig struct {
	// Enabled records every command build in the history store.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the store: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains pruning configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite store configuration.
type SQLiteConfig struct {
	// Path is the database file.
	// Default: ".stlc/history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long a write waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains history pruning configuration.
type RetentionConfig struct {
	// Days is how long records are kept.
	// Default: 30
	Days int `yaml:"days"`

	// PruneSchedule is the cron expression of the pruning job in watch mode.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains rebuild-on-change configuration.
type WatchConfig struct {
	// Debounce is the quiet period after a change before rebuilding.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions watched in directories.
	// Default: [".lam", ".stlc"]
	Extensions []string `yaml:"extensions"`
}
