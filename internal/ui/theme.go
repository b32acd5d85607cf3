package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the palette and symbols the renderers pull from.
type Theme struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Pending  lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	Border lipgloss.Border

	SymOK, SymFail, Bullet string
}

var current Theme

// SetTheme selects the active theme. "mono" drops all color for dumb
// terminals and piped output.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected: plain, Help: plain,
			Border: lipgloss.NormalBorder(),
			SymOK:  "+", SymFail: "x", Bullet: "-",
		}
	default: // classic
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Help:     lipgloss.NewStyle().Faint(true),
			Border:   lipgloss.RoundedBorder(),
			SymOK:    "✔", SymFail: "✖", Bullet: "•",
		}
	}
}

// Current returns the active theme.
func Current() Theme { return current }

func init() { SetTheme("classic") }
