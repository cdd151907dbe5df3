package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
