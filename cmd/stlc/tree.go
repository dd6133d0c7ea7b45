package main

import (
	"github.com/spf13/cobra"

	"lambda-hq/stlc/pkg/cli"
	"lambda-hq/stlc/pkg/stlc/grammar"
)

var treeFlags struct {
	expr string
}

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the grammar's parse tree as YAML",
	Long: `Parse a program and print the concrete parse tree the grammar produces,
before the AST is built. The output is accepted by "stlc build --parse-tree",
so it can be edited by hand to exercise the builder's error paths.

Examples:
  stlc tree examples/identity.lam
  stlc tree --expr 'succ (pred 0)' > tree.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().StringVarP(&treeFlags.expr, "expr", "e", "", "parse this source text instead of a file")
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in := collectInputs(args, treeFlags.expr, cmd.InOrStdin())[0]
	if in.err != nil {
		return in.err
	}

	pairs, err := grammar.Parse(string(in.data), grammar.WithMaxDepth(cfg.Parser.MaxDepth))
	if err != nil {
		return err
	}

	out, err := grammar.EncodeYAML(pairs)
	if err != nil {
		return cli.NewCommandError("tree", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
