package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette and styles for the interactive form.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color

	TitleStyle   lipgloss.Style
	LabelStyle   lipgloss.Style
	FocusedLabel lipgloss.Style
	ResultStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	StatusStyle  lipgloss.Style
	HelpStyle    lipgloss.Style
}

// DefaultTheme returns a theme with default colors and styles.
func DefaultTheme() *Theme {
	theme := &Theme{
		Primary: lipgloss.Color("#7D56F4"),
		Success: lipgloss.Color("#04B575"),
		Danger:  lipgloss.Color("#ED567A"),
		Muted:   lipgloss.Color("#626262"),
	}

	theme.TitleStyle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	theme.LabelStyle = lipgloss.NewStyle().
		Foreground(theme.Muted)

	theme.FocusedLabel = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	theme.ResultStyle = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Success).
		Padding(0, 1).
		MarginTop(1)

	theme.ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Danger).
		MarginTop(1)

	theme.StatusStyle = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	theme.HelpStyle = lipgloss.NewStyle().
		Foreground(theme.Muted).
		MarginTop(1)

	return theme
}
