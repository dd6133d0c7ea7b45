package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"lambda-hq/stlc/pkg/cli"
	"lambda-hq/stlc/pkg/stlc/grammar"
)

var replFlags struct {
	format      string
	historyFile string
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Build expressions interactively",
	Long: `Start an interactive session. Each line is built as a program and its
AST printed.

Commands:
  :format tree|expr|json  change the output format
  :tree <expr>            print the grammar's parse tree of <expr> as YAML
  :help                   show this help
  :quit                   leave the session (also Ctrl-D)`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replFlags.format, "format", "f", "", "output format: tree, expr, json (default from config)")
	replCmd.Flags().StringVar(&replFlags.historyFile, "history-file", "", "file keeping line history between sessions")
}

const replHelp = `:format tree|expr|json  change the output format
:tree <expr>            print the parse tree of <expr> as YAML
:help                   show this help
:quit                   leave the session`

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := cli.ParseOutputFormat(firstNonEmpty(replFlags.format, cfg.Printer.Format))
	if err != nil {
		return err
	}

	a, err := newApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if cfg.History.Enabled {
		if _, err := a.openHistory(); err != nil {
			return err
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "λ> ",
		HistoryFile:     replFlags.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewCommandError("repl", err)
	}
	defer rl.Close()

	s := &replSession{app: a, format: format}
	ctx := cmd.Context()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return cli.NewCommandError("repl", err)
		}

		if quit := s.eval(ctx, line); quit {
			return nil
		}
	}
}

// replSession evaluates REPL lines.
type replSession struct {
	app    *app
	format cli.OutputFormat
}

// eval handles one line and reports whether the session should end.
func (s *replSession) eval(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if !strings.HasPrefix(line, ":") {
		root, err := s.app.build(ctx, sourceREPL, []byte(line), false)
		if err != nil {
			s.app.printStatus(s.app.styles.Failure(err))
			return false
		}
		if err := s.app.printTree(root, s.format); err != nil {
			s.app.printStatus(s.app.styles.Failure(err))
		}
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case ":q", ":quit", ":exit":
		return true
	case ":help":
		s.app.printStatus(replHelp)
	case ":format":
		format, err := cli.ParseOutputFormat(arg)
		if err != nil || arg == "" {
			s.app.printStatus(s.app.styles.Failure(fmt.Errorf("usage: :format tree|expr|json")))
			return false
		}
		s.format = format
		s.app.printStatus(s.app.styles.Muted("format: " + string(format)))
	case ":tree":
		pairs, err := grammar.Parse(arg, grammar.WithMaxDepth(s.app.cfg.Parser.MaxDepth))
		if err != nil {
			s.app.printStatus(s.app.styles.Failure(err))
			return false
		}
		out, err := grammar.EncodeYAML(pairs)
		if err != nil {
			s.app.printStatus(s.app.styles.Failure(err))
			return false
		}
		s.app.outMu.Lock()
		s.app.stdout.Write(out)
		s.app.outMu.Unlock()
	default:
		s.app.printStatus(s.app.styles.Failure(fmt.Errorf("unknown command %s (try :help)", command)))
	}
	return false
}
