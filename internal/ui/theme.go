package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Reminder lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
}

var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	Reminder: lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7")),
	Selected: lipgloss.NewStyle().Background(lipgloss.Color("#313244")).Bold(true),
	Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
}
