package tui

import "github.com/charmbracelet/lipgloss"

var (
	heroStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	eyebrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	navStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	barStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	menuItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("252"))
)
