package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := lipgloss.NewStyle().Width(lo.contentW).MaxHeight(headerHeight).Render(m.toolbar())

	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	m.mapW = max(8, lo.mapW)
	m.mapH = max(4, lo.mapH)
	var mapView string
	switch {
	case m.showTable:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.prompt != promptNone:
		m.ta.SetWidth(m.mapW)
		m.ta.SetHeight(min(m.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.ta.View())
	case m.help.ShowAll:
		box := boxStyle.Render(m.help.View(m.keys))
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	default:
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderCanvas(m.mapW, m.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := lipgloss.JoinVertical(lipgloss.Left, m.statusLine(lo.contentW), m.helpLine())
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return zone.Scan(appStyle.Width(lo.contentW).Height(m.height).Render(ui))
}

// statusLine shows the status on the left and the pointer, zoom and
// selection on the right.
func (m Model) statusLine(width int) string {
	status := m.status
	if *m.dirty > 0 {
		status = "● " + status
	}
	left := dimStyle.Render(" " + status + " ")

	right := fmt.Sprintf("zoom %.2fx ", m.ed.Board().Factor())
	if m.hovering {
		right = fmt.Sprintf("x=%g y=%g  ", m.ed.Cursor().X, m.ed.Cursor().Y) + right
	}
	if e, ok := m.selectedElement(); ok {
		right = elementSummary(e) + "  " + right
	}
	right = dimStyle.Render(right)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(left)
	}
	return padRight(left, gap) + right
}

func (m Model) helpLine() string {
	if !m.helpVisible || m.help.ShowAll {
		return ""
	}
	return " " + m.help.ShortHelpView(m.keys.ShortHelp())
}
