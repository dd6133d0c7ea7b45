package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lambda-hq/stlc/pkg/cli"
	"lambda-hq/stlc/pkg/history"
)

var historyFlags struct {
	source  string
	outcome string
	since   time.Duration
	limit   int
	format  string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the build history",
	Long: `Inspect and prune the builds recorded in the history store.

Builds are recorded when history.enabled is set in the configuration, or
for a single command with "stlc build --record".

Subcommands:
  list   - List recorded builds, newest first
  prune  - Delete builds older than history.retention.days`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded builds",
	Long: `List recorded builds, newest first.

Examples:
  # Last 20 builds
  stlc history list

  # Failed builds of one file in the last day
  stlc history list --source main.lam --outcome failure --since 24h

  # Export as JSON
  stlc history list --format json --limit 0`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete builds older than the retention period",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyPruneCmd)

	historyListCmd.Flags().StringVar(&historyFlags.source, "source", "", "filter by source path")
	historyListCmd.Flags().StringVar(&historyFlags.outcome, "outcome", "", "filter by outcome (success, failure)")
	historyListCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only builds recorded within this duration")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "max results (0 for all)")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if historyFlags.format != "text" && historyFlags.format != "json" {
		return cli.NewConfigError("format", fmt.Sprintf("unsupported output format %q (supported: text, json)", historyFlags.format))
	}
	if historyFlags.outcome != "" && historyFlags.outcome != history.OutcomeSuccess && historyFlags.outcome != history.OutcomeFailure {
		return cli.NewConfigError("outcome", fmt.Sprintf("unsupported outcome %q (supported: success, failure)", historyFlags.outcome))
	}

	a, err := setupHistoryApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	query := &history.Query{
		Source:  historyFlags.source,
		Outcome: historyFlags.outcome,
		Limit:   historyFlags.limit,
	}
	if historyFlags.since > 0 {
		since := time.Now().Add(-historyFlags.since)
		query.Since = &since
	}

	records, err := a.history.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if historyFlags.format == "json" {
		encoder := json.NewEncoder(a.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}
	return writeRecords(a.stdout, records)
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	a, err := setupHistoryApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	pruner := history.NewPruner(a.history, &a.cfg.History.Retention).
		WithObserver(a.metrics).
		WithLogger(a.logger)

	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	a.printStatus(a.styles.Success("pruned %d builds older than %d days", deleted, a.cfg.History.Retention.Days))
	return nil
}

func setupHistoryApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := newApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if _, err := a.openHistory(); err != nil {
		a.Close(context.Background())
		return nil, err
	}
	return a, nil
}

// writeRecords prints records as an aligned table.
func writeRecords(w io.Writer, records []*history.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tOUTCOME\tSOURCE\tNODES\tDURATION\tDETAIL")

	for _, r := range records {
		detail := r.Expr
		if r.Outcome == history.OutcomeFailure {
			detail = fmt.Sprintf("[%s] %s", r.ErrorKind, r.Message)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.RecordedAt.Local().Format(time.DateTime),
			r.Outcome,
			r.Source,
			r.Nodes,
			r.Duration.Round(time.Microsecond),
			detail,
		)
	}

	return tw.Flush()
}
