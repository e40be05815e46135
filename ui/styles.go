package ui

import "github.com/charmbracelet/lipgloss"

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("#01B4E4") // TMDB light blue
	secondaryColor = lipgloss.Color("#F5F5F1") // Light cream color
	accentColor    = lipgloss.Color("#564D4D") // Dark gray
	highlightColor = lipgloss.Color("#90CEA1") // TMDB green
	mutedColor     = lipgloss.Color("#8A8A8A")
	errorColor     = lipgloss.Color("#FF5F5F")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	normalTextStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	highlightedTextStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Component styles
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(50)

	focusedInputStyle = inputStyle.
				BorderForeground(primaryColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(cardInnerWidth).
			Height(cardInnerHeight)

	selectedCardStyle = cardStyle.
				BorderForeground(highlightColor)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	toastStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Background(errorColor).
			Bold(true).
			Padding(0, 2)

	activePageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0D253F")).
			Background(highlightColor).
			Bold(true).
			Padding(0, 1)

	pageStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 1)

	disabledPageStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Padding(0, 1)
)
