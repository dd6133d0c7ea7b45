package ast

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultIndent is the indent unit written once per nesting level.
const DefaultIndent = "\t"

// Printer writes the diagnostic dump of a tree: one line per node in
// pre-order, indented by depth.
type Printer struct {
	Indent string
}

// NewPrinter creates a printer using DefaultIndent.
func NewPrinter() *Printer {
	return &Printer{Indent: DefaultIndent}
}

// Fprint writes the dump of n to w.
func (p *Printer) Fprint(w io.Writer, n Node) error {
	return Walk(n, func(n Node, depth int) error {
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(p.Indent, depth), Label(n))
		return err
	})
}

// Sprint returns the dump of n as a string.
func (p *Printer) Sprint(n Node) string {
	var sb strings.Builder
	_ = p.Fprint(&sb, n)
	return sb.String()
}

// Fprint writes the dump of n to w using the default printer.
func Fprint(w io.Writer, n Node) error {
	return NewPrinter().Fprint(w, n)
}

// Print writes the dump of n to standard output.
func Print(n Node) error {
	return Fprint(os.Stdout, n)
}

// Label returns the one-line description of n used by the printer.
func Label(n Node) string {
	switch v := n.(type) {
	case *Abstraction:
		return fmt.Sprintf("Abstraction with type %s", v.Type)
	case *Application:
		return "Application"
	case *Identifier:
		return fmt.Sprintf("Identifier with name %s", v.Name)
	case *Condition:
		return "Condition"
	case *Arithmetic:
		return fmt.Sprintf("Arithmetic with operator %s", v.Op)
	case *IsZero:
		return "IsZero"
	case *Literal:
		return fmt.Sprintf("Value %s", v.Value)
	default:
		return fmt.Sprintf("%T", n)
	}
}
