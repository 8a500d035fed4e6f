package main

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#3B82F6")
	passColor   = lipgloss.Color("#10B981")
	failColor   = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(passColor).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(failColor).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(failColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
