/*
Package cli provides the output and error helpers shared by the stlc
command.

Output Formatting:

A built tree is written in one of three formats:

	formatter := cli.NewFormatter(cli.FormatTree, "\t")
	if err := formatter.FormatTo(os.Stdout, root); err != nil {
		return err
	}

Status Lines:

Styles renders success and failure lines with lipgloss, dropping colors
when the stream is not a terminal:

	styles := cli.NewStyles(os.Stderr)
	fmt.Fprintln(os.Stderr, styles.Failure(err))

Exit Codes:

ExitCode maps command errors to process exit codes: 1 when a program does
not build, 2 for configuration errors and 3 when a file cannot be read.
*/
package cli
