package cli

import (
	"fmt"
	"io"

	"lambda-hq/stlc/pkg/stlc/ast"
)

// OutputFormat selects how a built tree is written.
type OutputFormat string

const (
	// FormatTree is the indented diagnostic dump (default).
	FormatTree OutputFormat = "tree"
	// FormatExpr re-renders the tree as source text.
	FormatExpr OutputFormat = "expr"
	// FormatJSON is the JSON encoding of the tree.
	FormatJSON OutputFormat = "json"
)

// OutputFormats lists every supported format.
var OutputFormats = []OutputFormat{FormatTree, FormatExpr, FormatJSON}

// ParseOutputFormat validates a format name. The empty name selects
// FormatTree.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatTree, nil
	}
	for _, f := range OutputFormats {
		if OutputFormat(s) == f {
			return f, nil
		}
	}
	return "", NewConfigError("format", fmt.Sprintf("unsupported output format %q (supported: tree, expr, json)", s))
}

// Formatter writes a built tree.
type Formatter interface {
	FormatTo(w io.Writer, root ast.Node) error
}

// TreeFormatter writes the diagnostic dump.
type TreeFormatter struct {
	Indent string
}

// FormatTo writes the dump of root to w.
func (f *TreeFormatter) FormatTo(w io.Writer, root ast.Node) error {
	p := ast.NewPrinter()
	if f.Indent != "" {
		p.Indent = f.Indent
	}
	return p.Fprint(w, root)
}

// ExprFormatter writes root as one line of source text.
type ExprFormatter struct{}

// FormatTo writes the surface rendering of root to w.
func (f *ExprFormatter) FormatTo(w io.Writer, root ast.Node) error {
	_, err := fmt.Fprintln(w, ast.Format(root))
	return err
}

// JSONFormatter writes the JSON encoding of root.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes root to w as JSON followed by a newline.
func (f *JSONFormatter) FormatTo(w io.Writer, root ast.Node) error {
	var (
		data []byte
		err  error
	)
	if f.Indent {
		data, err = ast.MarshalIndentJSON(root)
	} else {
		data, err = ast.MarshalJSON(root)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// NewFormatter creates a formatter for format. indent applies to the tree
// format only.
func NewFormatter(format OutputFormat, indent string) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatExpr:
		return &ExprFormatter{}
	default:
		return &TreeFormatter{Indent: indent}
	}
}
