// Package ux renders user-facing CLI output. Messages are styled when the
// destination is an interactive terminal and degrade to plain text when
// output is piped or captured.
package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Printer writes operator-facing messages. Quiet suppresses everything but
// errors.
type Printer struct {
	out    io.Writer
	err    io.Writer
	styled bool
	quiet  bool
}

// NewPrinter builds a printer for the given streams. Styling turns on only
// when out is a terminal.
func NewPrinter(out, errOut io.Writer, quiet bool) *Printer {
	return &Printer{out: out, err: errOut, styled: IsTerminal(out), quiet: quiet}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Successf reports a completed action, prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, p.render(successStyle, "✓ ")+fmt.Sprintf(format, args...))
}

// Infof reports neutral information.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, p.render(infoStyle, "• ")+fmt.Sprintf(format, args...))
}

// Warnf reports a recoverable problem.
func (p *Printer) Warnf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, p.render(warnStyle, "! ")+fmt.Sprintf(format, args...))
}

// Errorf reports a failure. It prints even in quiet mode, to stderr.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.err, p.render(errorStyle, "✗ ")+fmt.Sprintf(format, args...))
}

// Plainf prints without any prefix or styling, for machine-friendly lines.
func (p *Printer) Plainf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Path styles a filesystem path for embedding in a message.
func (p *Printer) Path(path string) string {
	return p.render(pathStyle, path)
}

// Muted styles de-emphasised text such as hints.
func (p *Printer) Muted(text string) string {
	return p.render(mutedStyle, text)
}

// Out exposes the underlying writer for tabular output.
func (p *Printer) Out() io.Writer { return p.out }

// Quiet reports whether non-error output is suppressed.
func (p *Printer) Quiet() bool { return p.quiet }

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return style.Render(text)
}
