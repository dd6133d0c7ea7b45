package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"lambda-hq/stlc/pkg/cli"
	"lambda-hq/stlc/pkg/history"
	"lambda-hq/stlc/pkg/telemetry/health"
	"lambda-hq/stlc/pkg/watch"
)

var watchFlags struct {
	format string
}

var watchCmd = &cobra.Command{
	Use:   "watch path...",
	Short: "Rebuild programs whenever they change",
	Long: `Build every program under the given files and directories, then rebuild
each one when it is saved. Directories are watched recursively for files
with the configured extensions (watch.extensions).

While watching, the metrics endpoint is served when telemetry.metrics is
enabled, together with /healthz, /readyz and /version probes, and the build history is pruned on history.retention.prune_schedule
when history is enabled.

Examples:
  stlc watch examples/
  stlc watch --format expr main.lam`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.format, "format", "f", "", "output format: tree, expr, json (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := cli.ParseOutputFormat(firstNonEmpty(watchFlags.format, cfg.Printer.Format))
	if err != nil {
		return err
	}

	a, err := newApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	return a.watch(ctx, args, format)
}

// watch builds every watched file, then rebuilds on change until ctx is
// done.
func (a *app) watch(ctx context.Context, paths []string, format cli.OutputFormat) error {
	w, err := watch.New(&a.cfg.Watch, a.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}

	checker := health.New(0)
	checker.Register("watcher", func(context.Context) error {
		if !w.Running() {
			return errors.New("watcher is not running")
		}
		return nil
	})

	if a.cfg.History.Enabled {
		store, err := a.openHistory()
		if err != nil {
			return err
		}
		checker.Register("history", func(ctx context.Context) error {
			_, err := store.Count(ctx, &history.Query{Limit: 1})
			return err
		})

		pruner := history.NewPruner(store, &a.cfg.History.Retention).
			WithObserver(a.metrics).
			WithLogger(a.logger)
		scheduler := history.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
	}

	serveErr := make(chan error, 1)
	if a.metrics.Enabled() {
		info := health.NewVersionInfo(Version, GitCommit, BuildDate)
		go func() {
			serveErr <- a.metrics.Serve(ctx, a.logger, func(mux *http.ServeMux) {
				checker.Mount(mux, info)
			})
		}()
	}

	for _, file := range w.Files() {
		a.rebuild(ctx, file, format)
	}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Watch(ctx, func(ctx context.Context, ev watch.Event) {
			a.metrics.RecordRebuild(ev.Op)
			a.rebuild(ctx, ev.Path, format)
		})
	}()

	select {
	case err := <-watchErr:
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		return nil
	case err := <-serveErr:
		w.Stop()
		if err != nil {
			return cli.NewCommandError("watch", fmt.Errorf("metrics server: %w", err))
		}
		return <-watchErr
	}
}

// rebuild builds one file and reports the result.
func (a *app) rebuild(ctx context.Context, path string, format cli.OutputFormat) {
	data, err := readSource(path, nil)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.printStatus(a.styles.Muted(fmt.Sprintf("- %s removed", path)))
			return
		}
		a.printFailure(path, err)
		return
	}

	root, err := a.build(ctx, path, data, false)
	if err != nil {
		a.printFailure(path, err)
		return
	}

	a.printStatus(a.styles.Success("%s", path))
	if err := a.printTree(root, format); err != nil {
		a.logger.ErrorContext(ctx, "failed to write tree", "source", path, "error", err)
	}
}
