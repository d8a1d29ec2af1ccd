package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette used by the interface
const (
	colorAccent = lipgloss.Color("205")
	colorTitle  = lipgloss.Color("39")
	colorMuted  = lipgloss.Color("245")
	colorBorder = lipgloss.Color("240")
)

type appStyles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	pane     lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style
	spinner  lipgloss.Style
}

func newAppStyles() appStyles {
	return appStyles{
		header:   lipgloss.NewStyle().Bold(true),
		label:    lipgloss.NewStyle().Foreground(colorMuted),
		pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		title:    lipgloss.NewStyle().Foreground(colorTitle).Bold(true),
		selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		help:     lipgloss.NewStyle().Foreground(colorBorder),
		spinner:  lipgloss.NewStyle().Foreground(colorAccent),
	}
}
