package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
)

// Styles renders status lines for one output stream. Colors are dropped
// automatically when the stream is not a terminal.
type Styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// NewStyles creates styles for w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Success renders a "✓ message" line.
func (s *Styles) Success(format string, args ...any) string {
	return s.success.Render("✓ " + fmt.Sprintf(format, args...))
}

// Failure renders err as "✗ message". Build errors use their multi-line
// detail with the rule and suggestion lines dimmed.
func (s *Styles) Failure(err error) string {
	var buildErr *stlcErrors.Error
	if !errors.As(err, &buildErr) {
		return s.failure.Render("✗ " + err.Error())
	}

	lines := strings.Split(strings.TrimSuffix(buildErr.Detail(), "\n"), "\n")
	out := make([]string, len(lines))
	out[0] = s.failure.Render("✗ " + lines[0])
	for i, line := range lines[1:] {
		out[i+1] = s.muted.Render(line)
	}
	return strings.Join(out, "\n")
}

// Label renders a bold heading.
func (s *Styles) Label(text string) string {
	return s.label.Render(text)
}

// Muted renders secondary text.
func (s *Styles) Muted(text string) string {
	return s.muted.Render(text)
}
