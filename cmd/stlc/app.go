package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"lambda-hq/stlc/pkg/cli"
	"lambda-hq/stlc/pkg/config"
	"lambda-hq/stlc/pkg/history"
	"lambda-hq/stlc/pkg/stlc"
	"lambda-hq/stlc/pkg/stlc/ast"
	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
	"lambda-hq/stlc/pkg/stlc/parser"
	"lambda-hq/stlc/pkg/telemetry/logging"
	"lambda-hq/stlc/pkg/telemetry/metrics"
	"lambda-hq/stlc/pkg/telemetry/tracing"
)

// Source names of inputs that are not files.
const (
	sourceStdin = "<stdin>"
	sourceExpr  = "<expr>"
	sourceREPL  = "<repl>"
)

// app holds the components shared by the commands for one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	tracer  *tracing.Tracer
	metrics *metrics.Collector
	parser  *parser.Parser
	history history.Store // nil unless builds are recorded

	stdout io.Writer
	stderr io.Writer
	styles *cli.Styles
	outMu  sync.Mutex
}

// newApp wires logging, tracing, metrics and the parser from cfg.
func newApp(cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    stderr,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	p := parser.NewParser().
		WithMaxFileSize(cfg.Parser.MaxFileSize).
		WithMaxDepth(cfg.Parser.MaxDepth).
		WithLogger(logger).
		WithTracer(tracer.Tracer()).
		WithMetrics(collector)

	return &app{
		cfg:     cfg,
		logger:  logger,
		tracer:  tracer,
		metrics: collector,
		parser:  p,
		stdout:  stdout,
		stderr:  stderr,
		styles:  cli.NewStyles(stderr),
	}, nil
}

// openHistory opens the configured history store and records every later
// build into it.
func (a *app) openHistory() (history.Store, error) {
	if a.history != nil {
		return a.history, nil
	}

	store, err := history.Open(&a.cfg.History)
	if err != nil {
		return nil, cli.NewCommandError("history", err)
	}
	a.history = store
	return store, nil
}

// Close flushes traces, writes the metrics textfile and closes the history
// store.
func (a *app) Close(ctx context.Context) error {
	var errs []error

	if a.history != nil {
		errs = append(errs, a.history.Close())
	}
	if path := a.cfg.Telemetry.Metrics.Textfile; path != "" && a.metrics.Enabled() {
		errs = append(errs, a.metrics.WriteTextfile(path))
	}
	errs = append(errs, a.tracer.Shutdown(ctx))

	return errors.Join(errs...)
}

// build builds one source and records the outcome in the history store.
func (a *app) build(ctx context.Context, source string, data []byte, parseTree bool) (ast.Node, error) {
	start := time.Now()

	var (
		root ast.Node
		err  error
	)
	if parseTree {
		root, err = a.parser.ParseTree(ctx, data, source)
	} else {
		root, err = a.parser.ParseBytes(ctx, data, source)
	}

	if a.history != nil {
		record := history.NewRecord(source, data, root, err, time.Since(start))
		if storeErr := a.history.Store(ctx, record); storeErr != nil {
			a.logger.WarnContext(ctx, "failed to record build", "source", source, "error", storeErr)
		}
	}

	return root, err
}

// printTree writes root in format to stdout.
func (a *app) printTree(root ast.Node, format cli.OutputFormat) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()

	return cli.NewFormatter(format, a.cfg.Printer.Indent).FormatTo(a.stdout, root)
}

// printFailure writes the styled failure of source to stderr.
func (a *app) printFailure(source string, err error) {
	a.outMu.Lock()
	defer a.outMu.Unlock()

	fmt.Fprintf(a.stderr, "%s\n%s\n", a.styles.Label(source), a.styles.Failure(err))
}

// printStatus writes a styled line to stderr.
func (a *app) printStatus(line string) {
	a.outMu.Lock()
	defer a.outMu.Unlock()

	fmt.Fprintln(a.stderr, line)
}

// readSource reads a file, or standard input for "-".
func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, stlcErrors.Wrap(stlcErrors.KindIO, "Failed to read standard input", err)
		}
		return data, nil
	}

	src, err := stlc.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []byte(src), nil
}

// sourceName labels path in logs, history and output.
func sourceName(path string) string {
	if path == "-" {
		return sourceStdin
	}
	return path
}
