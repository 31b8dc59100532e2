package shell

import "github.com/charmbracelet/lipgloss"

var (
	// promptStyle for the input prompt
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// titleStyle for bookmark titles in listings
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// pathStyle for the [0.1.2] index labels
	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// pageStyle for page numbers
	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for error messages
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// okStyle for confirmations
	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// dimStyle for help text and metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
