// Package tui provides the interactive terminal UI for trilingua.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - pronunciations, subtitles
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - headwords
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - confirmations
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(0, 2)

	headwordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(1, 4).
			Margin(1, 0).
			Align(lipgloss.Center)

	bigHeadwordStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBg).
				Padding(1, 6).
				Align(lipgloss.Center)

	pronStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	exampleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(2)

	translationStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true).
				PaddingLeft(2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
