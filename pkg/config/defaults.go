package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultMaxFileSize = int64(10 * 1024 * 1024) // 10MB
	DefaultMaxDepth    = 0

	// Printer defaults
	DefaultPrinterIndent = "\t"
	DefaultPrinterFormat = "tree"

	// Telemetry defaults
	DefaultLoggingLevel        = "info"
	DefaultLoggingFormat       = "text"
	DefaultMetricsNamespace    = "stlc"
	DefaultMetricsSubsystem    = "parser"
	DefaultMetricsListen       = "127.0.0.1:9464"
	DefaultMetricsPath         = "/metrics"
	DefaultTracingSamplingRate = 1.0
	DefaultTracingServiceName  = "stlc"

	// History defaults
	DefaultHistoryBackend           = "sqlite"
	DefaultHistorySQLitePath        = ".stlc/history.db"
	DefaultHistorySQLiteBusyTimeout = 5 * time.Second
	DefaultHistoryRetentionDays     = 30
	DefaultHistoryPruneSchedule     = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond
)

// DefaultWatchExtensions are the source file extensions watched by default.
var DefaultWatchExtensions = []string{".lam", ".stlc"}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Parser defaults; a zero max depth already means unlimited
	if cfg.Parser.MaxFileSize == 0 {
		cfg.Parser.MaxFileSize = DefaultMaxFileSize
	}

	// Printer defaults
	if cfg.Printer.Indent == "" {
		cfg.Printer.Indent = DefaultPrinterIndent
	}
	if cfg.Printer.Format == "" {
		cfg.Printer.Format = DefaultPrinterFormat
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListen
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSamplingRate
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultHistoryRetentionDays
	}
	if cfg.History.Retention.PruneSchedule == "" {
		cfg.History.Retention.PruneSchedule = DefaultHistoryPruneSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
}

// Default returns a configuration holding only default values.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
