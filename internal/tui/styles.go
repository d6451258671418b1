package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	toolStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")).Background(accentFg).Bold(true)
)

// Canvas colors. Terminals render on dark backgrounds, so the default
// stroke is lifted to stay readable.
const (
	boardEdgeColor = "#243141"
	selectedColor  = "#7C3AED"
	hoverColor     = "#FF7515"
	erasingColor   = "#4B5563"
	gripColor      = "#FFEE58"
	darkStroke     = "#333333"
	liftedStroke   = "#D4D4D8"
)

func strokeColor(c string) string {
	if c == "" || c == darkStroke {
		return liftedStroke
	}
	return c
}
