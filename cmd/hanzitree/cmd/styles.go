package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - pronunciation
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - characters
	ColorMuted     = lipgloss.Color("#666666") // Gray - codepoints, hints
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - available directions
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// TitleStyle heads command summaries.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPrimary).
	Background(ColorBg).
	Padding(0, 1)

// Character card styles
var (
	CharacterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	PronunciationStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	CodepointStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	YesStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	NoStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
)
