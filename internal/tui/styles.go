package tui

import "github.com/charmbracelet/lipgloss"

var (
	highlight = lipgloss.Color("205")
	subtle    = lipgloss.Color("241")
	danger    = lipgloss.Color("196")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(highlight).MarginBottom(1)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(subtle)
	activeTab     = tabStyle.Foreground(highlight).Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(subtle)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Background(highlight).Foreground(lipgloss.Color("230"))
	statusStyle   = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(subtle)

	dialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1, 2).
			Width(50)
	alertStyle = dialogStyle.BorderForeground(danger)
)
