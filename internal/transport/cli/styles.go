package cli

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorPrimary  = lipgloss.Color("#6366F1")
	colorMuted    = lipgloss.Color("#6C7086")
	colorPositive = lipgloss.Color("#22C55E")
	colorNegative = lipgloss.Color("#EF4444")
	colorBar      = lipgloss.Color("#818CF8")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	levelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	positiveStyle = lipgloss.NewStyle().Foreground(colorPositive)
	negativeStyle = lipgloss.NewStyle().Foreground(colorNegative)

	barStyle = lipgloss.NewStyle().Foreground(colorBar)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
