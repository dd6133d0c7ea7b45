package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lambda-hq/stlc/pkg/cli"
)

var buildFlags struct {
	format    string
	expr      string
	parseTree bool
	record    bool
}

var buildCmd = &cobra.Command{
	Use:   "build [file...]",
	Short: "Build programs and print their ASTs",
	Long: `Build one or more programs and print each AST.

With no file and no --expr, the program is read from standard input; "-"
also names standard input. Each input is built independently: a failure is
reported and the remaining inputs are still built. The command fails if any
input fails.

Output formats:
  tree  indented diagnostic dump, one node per line (default)
  expr  the tree rendered back to source
  json  the tree as JSON

Examples:
  # Build a file
  stlc build examples/identity.lam

  # Build an inline expression
  stlc build --expr 'if iszero 0 then true else false' --format expr

  # Build a hand-written parse tree
  stlc build --parse-tree tree.yaml

  # Record the build in the history store
  stlc build --record examples/*.lam`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFlags.format, "format", "f", "", "output format: tree, expr, json (default from config)")
	buildCmd.Flags().StringVarP(&buildFlags.expr, "expr", "e", "", "build this source text instead of files")
	buildCmd.Flags().BoolVar(&buildFlags.parseTree, "parse-tree", false, "inputs are YAML parse trees instead of source")
	buildCmd.Flags().BoolVar(&buildFlags.record, "record", false, "record builds in the history store")
}

// input is one program to build.
type input struct {
	name string
	data []byte
	err  error // Read failure
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := cli.ParseOutputFormat(firstNonEmpty(buildFlags.format, cfg.Printer.Format))
	if err != nil {
		return err
	}

	a, err := newApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if buildFlags.record || cfg.History.Enabled {
		if _, err := a.openHistory(); err != nil {
			return err
		}
	}

	inputs := collectInputs(args, buildFlags.expr, cmd.InOrStdin())
	return a.buildAll(cmd.Context(), inputs, format, buildFlags.parseTree)
}

// collectInputs reads the inputs named on the command line.
func collectInputs(args []string, expr string, stdin io.Reader) []input {
	if expr != "" {
		return []input{{name: sourceExpr, data: []byte(expr)}}
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := readSource(path, stdin)
		inputs = append(inputs, input{name: sourceName(path), data: data, err: err})
	}
	return inputs
}

// buildAll builds every input, printing trees to stdout and failures to
// stderr. It returns the last failure.
func (a *app) buildAll(ctx context.Context, inputs []input, format cli.OutputFormat, parseTree bool) error {
	var lastErr error

	for _, in := range inputs {
		if in.err != nil {
			a.printFailure(in.name, in.err)
			lastErr = in.err
			continue
		}

		root, err := a.build(ctx, in.name, in.data, parseTree)
		if err != nil {
			a.printFailure(in.name, err)
			lastErr = err
			continue
		}

		if len(inputs) > 1 {
			a.outMu.Lock()
			fmt.Fprintf(a.stdout, "==> %s <==\n", in.name)
			a.outMu.Unlock()
		}
		if err := a.printTree(root, format); err != nil {
			return cli.NewCommandError("build", err)
		}
	}

	if lastErr != nil {
		return &reportedError{err: lastErr}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
