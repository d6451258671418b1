package tui

import (
	"fmt"
	"strconv"

	key "github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"floormap/internal/editor"
	"floormap/internal/geom"
)

// panStep is how far one arrow press moves the view, in micro-pixels.
const panStep = 8.0

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		m.help.Width = lo.contentW
		if !m.fitted {
			m.fitBoard(lo.mapW, lo.mapH)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.prompt != promptNone {
		return m.handlePrompt(msg)
	}
	if m.showTable {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Table):
			m.showTable = false
		case key.Matches(msg, m.keys.Open):
			m.selectTableRow()
		default:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.showSidebar && (msg.String() == "up" || msg.String() == "down") {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Select):
		m.setMode(editor.ModeSelect)
	case key.Matches(msg, k.Move):
		m.setMode(editor.ModeMove)
	case key.Matches(msg, k.Line):
		m.setMode(editor.ModeLine)
	case key.Matches(msg, k.Rect):
		m.setMode(editor.ModeRect)
	case key.Matches(msg, k.Eraser):
		m.setMode(editor.ModeEraser)
	case key.Matches(msg, k.Color):
		m.cycleStroke()
	case key.Matches(msg, k.Pan):
		// no key-up events reach a terminal, so space toggles the hold
		if m.ed.IsHeld(editor.KeySpace) {
			m.ed.KeyUp(editor.KeySpace)
			m.status = "pan released"
		} else {
			m.ed.KeyDown(editor.KeySpace)
			m.status = "pan held: drag to move the board"
		}
	case key.Matches(msg, k.Delete):
		kk, _ := editor.ParseKey(msg.String())
		before := len(m.ed.Elements())
		m.ed.KeyDown(kk)
		m.ed.KeyUp(kk)
		if len(m.ed.Elements()) < before {
			m.status = "deleted selection"
		}
	case key.Matches(msg, k.ZoomIn):
		m.zoomCenter(-1)
	case key.Matches(msg, k.ZoomOut):
		m.zoomCenter(1)
	case key.Matches(msg, k.Fit):
		lo := m.layout()
		m.fitBoard(lo.mapW, lo.mapH)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ed.Board().Factor())
	case key.Matches(msg, k.Up):
		m.ed.PanBy(0, -panStep)
	case key.Matches(msg, k.Down):
		m.ed.PanBy(0, panStep)
	case key.Matches(msg, k.Left):
		m.ed.PanBy(-panStep, 0)
	case key.Matches(msg, k.Right):
		m.ed.PanBy(panStep, 0)
	case key.Matches(msg, k.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case key.Matches(msg, k.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.openItem(it)
			}
		}
	case key.Matches(msg, k.Paste):
		m.openPrompt(promptWKT, "Paste WKT (LINESTRING, POLYGON) or element JSON, one per line. Enter adds; Esc cancels.")
		m.status = "paste mode"
	case key.Matches(msg, k.Space):
		if _, ok := m.selectedRect(); !ok {
			m.status = "select a rect to turn into a space"
			break
		}
		m.openPrompt(promptSpace, "Space name, optionally \"name @ preset\". Enter creates; Esc cancels.")
		m.status = "new space"
	case key.Matches(msg, k.Table):
		m.showTable = true
		m.refreshElementTable()
	case key.Matches(msg, k.Save):
		m.save()
	case key.Matches(msg, k.Export):
		m.exportCSV()
	case key.Matches(msg, k.Thumbnail):
		m.exportThumbnail()
	case key.Matches(msg, k.Copy):
		m.copyToClipboard()
	case key.Matches(msg, k.CopyJSON):
		m.copyElementJSON()
	case key.Matches(msg, k.Cancel):
		m.ed.ClickBoard()
		m.status = "selection cleared"
	case key.Matches(msg, k.Help):
		// short line -> full panel -> hidden
		switch {
		case m.help.ShowAll:
			m.help.ShowAll = false
			m.helpVisible = false
		case m.helpVisible:
			m.help.ShowAll = true
		default:
			m.helpVisible = true
		}
	}
	return m, nil
}

func (m *Model) setMode(mode editor.Mode) {
	m.ed.SelectMode(mode)
	m.leftDown = false
	m.hoverRef = nil
	m.status = "mode: " + mode.String()
}

func (m *Model) zoomCenter(delta float64) {
	lo := m.layout()
	if m.ed.Wheel(cellToDevice(lo.mapW/2, lo.mapH/2), delta) {
		m.status = fmt.Sprintf("zoom: %.2fx", m.ed.Board().Factor())
	}
}

func (m *Model) openPrompt(kind promptKind, placeholder string) {
	m.prompt = kind
	m.ta.Placeholder = placeholder
	m.ta.SetValue("")
	m.ta.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.ta.Blur()
}

func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		m.status = "cancelled"
		return m, nil
	case "enter":
		kind := m.prompt
		value := m.ta.Value()
		m.closePrompt()
		switch kind {
		case promptWKT:
			m.addWKT(value)
		case promptSpace:
			m.createSpace(value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lo := m.layout()
	if msg.Y < headerHeight {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickToolbar(msg)
		}
		return m, nil
	}

	cx, cy, inside := lo.inMap(msg.X, msg.Y)
	if !inside || m.prompt != promptNone || m.showTable {
		m.hovering = false
		m.hoverRef = nil
		if m.leftDown && msg.Action == tea.MouseActionRelease {
			// a gesture that leaves the canvas ends on its edge
			cx = min(max(msg.X-lo.mapX, 0), lo.mapW-1)
			cy = min(max(msg.Y-lo.mapY, 0), lo.mapH-1)
			m.pointerUp(cellToDevice(cx, cy))
		}
		if m.showSidebar && msg.X < lo.sidebarW {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	device := cellToDevice(cx, cy)
	m.hovering = true
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.ed.Wheel(device, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.ed.Wheel(device, 1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointerDown(device)
	case msg.Action == tea.MouseActionMotion:
		m.ed.PointerMove(device)
		if m.leftDown && m.ed.Mode() == editor.ModeEraser {
			if ref, ok := hitTest(m.ed, device); ok {
				m.ed.HoverElement(ref)
			}
		}
	case msg.Action == tea.MouseActionRelease:
		m.pointerUp(device)
	}
	m.updateHover(device)
	return m, nil
}

// cycleStroke moves to the next palette color and paints the selected
// element with it.
func (m *Model) cycleStroke() {
	m.ed.SetStroke(geom.NextStroke(m.ed.Stroke()))
	m.status = "stroke: " + m.ed.Stroke()
	if id, ok := m.ed.SelectedID(); ok && m.ed.RecolorElement(id, m.ed.Stroke()) {
		m.status += fmt.Sprintf("  (element %d recolored)", id)
	}
}

func (m *Model) pointerDown(device geom.Coordinate) {
	m.leftDown = true
	ref, hit := hitTest(m.ed, device)
	m.ed.PointerDown(device)
	if m.ed.IsMoving() {
		return
	}
	switch m.ed.Mode() {
	case editor.ModeSelect:
		if !hit || !m.ed.ClickElement(ref) {
			m.ed.ClickBoard()
			return
		}
		m.status = "selected " + ref.String()
	case editor.ModeEraser:
		if hit {
			m.ed.HoverElement(ref)
		}
	}
}

func (m *Model) pointerUp(device geom.Coordinate) {
	if !m.leftDown {
		return
	}
	m.leftDown = false
	before := m.ed.Elements()
	m.ed.PointerUp(device)
	after := m.ed.Elements()
	switch {
	case len(after) > len(before):
		e := after[len(after)-1]
		m.status = "added " + e.Ref().String()
	case len(after) < len(before):
		m.status = "erased " + strconv.Itoa(len(before)-len(after)) + " element(s)"
	}
}

// updateHover highlights the element under the pointer while it could be
// clicked.
func (m *Model) updateHover(device geom.Coordinate) {
	m.hoverRef = nil
	if m.leftDown || !m.ed.Gate().ElementClickable {
		return
	}
	if ref, ok := hitTest(m.ed, device); ok {
		m.hoverRef = &ref
	}
}
