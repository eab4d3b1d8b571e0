package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = lipgloss.Color("212")
	colorPanel   = lipgloss.Color("236")
	colorSuccess = lipgloss.Color("42")
	colorError   = lipgloss.Color("203")
	colorWarn    = lipgloss.Color("214")
	colorInfo    = lipgloss.Color("75")
)

// Summary and log level styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorPanel).
			Bold(true).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	WarnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	InfoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
)
