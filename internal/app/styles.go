package app

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	nameStyle    = lipgloss.NewStyle().Bold(true)
)
