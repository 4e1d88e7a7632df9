package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console prints the run narration. Colours are chosen for the writer it is
// given, so output to a pipe or buffer stays plain text.
type Console struct {
	writer       io.Writer
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	stageStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// New creates a console writing to w
func New(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		writer:       w,
		successStyle: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		stageStyle:   r.NewStyle().Foreground(lipgloss.Color("205")),
		dimStyle:     r.NewStyle().Foreground(lipgloss.Color("246")),
	}
}

// Info prints a plain status line
func (c *Console) Info(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, fmt.Sprintf(format, args...))
}

// Stage prints the line announcing a pipeline stage
func (c *Console) Stage(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.stageStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a ✓ line
func (c *Console) Success(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an ERROR: line
func (c *Console) Error(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

// Warn prints a Warning: line
func (c *Console) Warn(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.dimStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}
