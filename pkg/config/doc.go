// Package config provides configuration management for the stlc command.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("stlc.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("stlc.yaml")
//
// An empty path skips the file and starts from the defaults.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention STLC_SECTION_FIELD.
// For example:
//
//   - STLC_PARSER_MAX_DEPTH overrides parser.max_depth
//   - STLC_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - STLC_WATCH_EXTENSIONS overrides watch.extensions (comma separated)
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// Validation errors include field paths:
//
//	configuration validation failed with 2 errors:
//	  - printer.format: invalid format "xml": must be 'tree', 'expr', or 'json'
//	  - history.retention.prune_schedule: invalid cron expression "nightly": ...
//
// # Example Configuration
//
//	parser:
//	  max_depth: 512
//
//	printer:
//	  format: "tree"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
//	  metrics:
//	    enabled: true
//
//	history:
//	  enabled: true
//	  backend: "sqlite"
//	  sqlite:
//	    path: ".stlc/history.db"
//	  retention:
//	    days: 30
//	    prune_schedule: "0 3 * * *"
package config
