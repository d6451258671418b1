package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"floormap/internal/editor"
)

const appTitle = " floormap "

// modeZone is the zone id of a mode button.
func (m Model) modeZone(mode editor.Mode) string { return m.zoneID + "mode-" + mode.String() }

func (m Model) strokeZone() string { return m.zoneID + "stroke" }

// toolbar renders the header row with every button marked as a zone.
func (m Model) toolbar() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(appTitle))

	for _, mode := range editor.Modes {
		label := strings.ToUpper(mode.String()[:1]) + mode.String()[1:]
		style := toolStyle
		if mode == m.ed.Mode() {
			style = activeStyle
		}
		sb.WriteString(zone.Mark(m.modeZone(mode), style.Render(label)))
	}

	stroke := m.ed.Stroke()
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(strokeColor(stroke))).Render("■")
	sb.WriteString(zone.Mark(m.strokeZone(), toolStyle.Render(swatch+" "+stroke)))

	if m.ed.IsHeld(editor.KeySpace) {
		sb.WriteString(dimStyle.Render(" [pan]"))
	}
	return sb.String()
}

// clickToolbar switches mode or cycles the stroke for the button under
// the pointer.
func (m *Model) clickToolbar(msg tea.MouseMsg) {
	for _, mode := range editor.Modes {
		if zone.Get(m.modeZone(mode)).InBounds(msg) {
			m.setMode(mode)
			return
		}
	}
	if zone.Get(m.strokeZone()).InBounds(msg) {
		m.cycleStroke()
	}
}
