package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lambda-hq/stlc/pkg/cli"
	"lambda-hq/stlc/pkg/config"
)

// defaultConfigFile is read when present; a missing default file means
// built-in defaults.
const defaultConfigFile = "stlc.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stlc",
	Short: "Build simply-typed lambda calculus programs into ASTs",
	Long: `stlc parses programs of a simply-typed lambda calculus with booleans,
natural numbers, succ/pred, iszero and if-then-else, and builds the abstract
syntax tree consumed by type checking and evaluation.

Every build either returns a complete tree or exactly one error.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, cli.NewStyles(os.Stderr).Failure(err))
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// reportedError marks an error whose details a command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// loadConfig initializes the global configuration from --config.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == defaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	if err := config.Initialize(path); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return config.GetConfig(), nil
}
