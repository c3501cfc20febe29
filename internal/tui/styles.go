package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gnomegl/passmeter/pkg/strength"
)

// Core colors shared across the analyzer view.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal/cyan for the title
	colorSuccess   = lipgloss.Color("40")  // Green for the copied flash
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	// Field labels next to the readouts
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Help line at the bottom
	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Flash shown after a clipboard copy
	copiedStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)

// tierStyle renders text in the display color the engine assigns to
// the tier, so the TUI and the report writers agree on the palette.
func tierStyle(t strength.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color())).Bold(true)
}
