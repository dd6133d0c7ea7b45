package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
parser:
  max_file_size: 4096
  max_depth: 128

printer:
  indent: "  "
  format: "expr"

telemetry:
  logging:
    level: "debug"
    format: "console"
  metrics:
    enabled: true
    listen_address: "127.0.0.1:9999"

history:
  enabled: true
  backend: "memory"
  retention:
    days: 7
    prune_schedule: "*/15 * * * *"

watch:
  debounce: "250ms"
  extensions: [".lam"]
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxFileSize != 4096 {
		t.Errorf("expected max file size 4096, got %d", cfg.Parser.MaxFileSize)
	}
	if cfg.Parser.MaxDepth != 128 {
		t.Errorf("expected max depth 128, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Printer.Indent != "  " {
		t.Errorf("expected indent %q, got %q", "  ", cfg.Printer.Indent)
	}
	if cfg.Printer.Format != "expr" {
		t.Errorf("expected format %q, got %q", "expr", cfg.Printer.Format)
	}
	if cfg.Telemetry.Logging.Format != "console" {
		t.Errorf("expected logging format %q, got %q", "console", cfg.Telemetry.Logging.Format)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be enabled")
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("expected history backend %q, got %q", "memory", cfg.History.Backend)
	}
	if cfg.History.Retention.Days != 7 {
		t.Errorf("expected retention days 7, got %d", cfg.History.Retention.Days)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}

	// Defaults fill what the file leaves out
	if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("expected default metrics path %q, got %q", DefaultMetricsPath, cfg.Telemetry.Metrics.Path)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.Printer.Format != DefaultPrinterFormat {
		t.Errorf("expected default format %q, got %q", DefaultPrinterFormat, cfg.Printer.Format)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got: %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("parser: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("printer:\n  format: \"xml\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if validationErr.Errors[0].Field != "printer.format" {
		t.Errorf("expected printer.format error, got %s", validationErr.Errors[0].Field)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("parser:\n  max_depth: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("STLC_PARSER_MAX_DEPTH", "20")
	t.Setenv("STLC_PRINTER_FORMAT", "json")
	t.Setenv("STLC_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("STLC_TELEMETRY_TRACING_SAMPLE_RATIO", "0.5")
	t.Setenv("STLC_HISTORY_ENABLED", "true")
	t.Setenv("STLC_HISTORY_SQLITE_PATH", "/tmp/h.db")
	t.Setenv("STLC_WATCH_DEBOUNCE", "2s")
	t.Setenv("STLC_WATCH_EXTENSIONS", ".lam, .lc,")

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 20 {
		t.Errorf("expected max depth 20, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Printer.Format != "json" {
		t.Errorf("expected format %q, got %q", "json", cfg.Printer.Format)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected logging level %q, got %q", "warn", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.5 {
		t.Errorf("expected sample ratio 0.5, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
	if !cfg.History.Enabled {
		t.Error("expected history to be enabled")
	}
	if cfg.History.SQLite.Path != "/tmp/h.db" {
		t.Errorf("expected sqlite path %q, got %q", "/tmp/h.db", cfg.History.SQLite.Path)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".lc" {
		t.Errorf("expected extensions [.lam .lc], got %v", cfg.Watch.Extensions)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("STLC_PARSER_MAX_DEPTH", "deep")
	t.Setenv("STLC_HISTORY_ENABLED", "maybe")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Parser.MaxDepth != 0 {
		t.Errorf("expected max depth 0, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.History.Enabled {
		t.Error("expected history to stay disabled")
	}
}

func TestLoadConfigWithEnvOverrides_RevalidatesOverrides(t *testing.T) {
	t.Setenv("STLC_HISTORY_BACKEND", "postgres")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error for overridden backend")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}
