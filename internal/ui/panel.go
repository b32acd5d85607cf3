package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OK prints a success notice to stdout.
func OK(msg string) {
	t := Current()
	fmt.Println(t.Success.Render(t.SymOK + " " + msg))
}

// Fail prints an error notice to stderr.
func Fail(msg string) {
	t := Current()
	fmt.Fprintln(os.Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Warn prints a non-blocking warning notice to stderr.
func Warn(msg string) {
	t := Current()
	fmt.Fprintln(os.Stderr, t.Pending.Render(t.Bullet+" "+msg))
}

// Panel draws a framed box around the given lines.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
