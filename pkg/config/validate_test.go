package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := NewTestConfig().
		WithMetrics("0.0.0.0:9464").
		WithTracing("otel-collector:4317").
		WithHistory("memory").
		Build()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantField string
	}{
		{
			name:      "negative max depth",
			cfg:       NewTestConfig().WithMaxDepth(-1).Build(),
			wantField: "parser.max_depth",
		},
		{
			name:      "unknown printer format",
			cfg:       NewTestConfig().WithPrinterFormat("sexpr").Build(),
			wantField: "printer.format",
		},
		{
			name:      "unknown log level",
			cfg:       NewTestConfig().WithLogLevel("trace").Build(),
			wantField: "telemetry.logging.level",
		},
		{
			name:      "metrics address without port",
			cfg:       NewTestConfig().WithMetrics("localhost").Build(),
			wantField: "telemetry.metrics.listen_address",
		},
		{
			name:      "tracing without endpoint",
			cfg:       NewTestConfig().WithTracing("").Build(),
			wantField: "telemetry.tracing.endpoint",
		},
		{
			name:      "unknown history backend",
			cfg:       NewTestConfig().WithHistory("postgres").Build(),
			wantField: "history.backend",
		},
		{
			name:      "invalid prune schedule",
			cfg:       NewTestConfig().WithPruneSchedule("every night").Build(),
			wantField: "history.retention.prune_schedule",
		},
		{
			name:      "negative debounce",
			cfg:       NewTestConfig().WithDebounce(-time.Second).Build(),
			wantField: "watch.debounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if err == nil {
				t.Fatal("expected validation to fail")
			}

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}

			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for %s, got %v", tt.wantField, validationErr.Errors)
			}
		})
	}
}

func TestValidate_Extensions(t *testing.T) {
	cfg := NewTestConfig().Build()
	cfg.Watch.Extensions = []string{".lam", "stlc"}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(err.Error(), "watch.extensions[1]") {
		t.Errorf("expected error for watch.extensions[1], got %v", err)
	}
}

func TestFieldError_Error(t *testing.T) {
	fe := FieldError{Field: "parser.max_depth", Message: "bad"}
	if got := fe.Error(); got != "parser.max_depth: bad" {
		t.Errorf("Error() = %q", got)
	}
}
