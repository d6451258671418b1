package tui

import (
	"math"
	"strings"

	"floormap/internal/editor"
	"floormap/internal/geom"
)

// hitTolerance is the pick radius in micro-pixels.
const hitTolerance = 3.0

// hitTest resolves the topmost element whose outline passes within
// hitTolerance of the device point.
func hitTest(ed *editor.Editor, device geom.Coordinate) (geom.ElementRef, bool) {
	board := ed.Board()
	world := board.ToWorld(device)
	tol := hitTolerance / board.Factor()
	elements := ed.Elements()
	best := math.Inf(1)
	var ref geom.ElementRef
	found := false
	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		if d := e.Distance(world); d <= tol && d < best {
			best, ref, found = d, e.Ref(), true
		}
	}
	return ref, found
}

func devicePath(board editor.BoardStatus, cs []geom.Coordinate) [][2]int {
	out := make([][2]int, len(cs))
	for i, c := range cs {
		out[i] = micro(board.ToDevice(c))
	}
	return out
}

// renderCanvas draws the board outline, elements, the gesture preview,
// grips and the cursor into a w x h cell canvas.
func (m Model) renderCanvas(w, h int) string {
	br := newBrailleBuf(w, h)
	board := m.ed.Board()

	edge := geom.MapElement{Type: geom.Rect, Width: board.Width, Height: board.Height}
	br.drawPath(devicePath(board, edge.Outline()), boardEdgeColor)

	for _, sp := range m.spaces {
		area := sp.Area.Rect(sp.Color)
		br.drawPath(devicePath(board, area.Outline()), sp.Color)
	}

	selID, hasSel := m.ed.SelectedID()
	for _, e := range m.ed.Elements() {
		color := strokeColor(e.Stroke)
		switch {
		case m.ed.IsErasing(e.ID):
			color = erasingColor
		case hasSel && selID == e.ID:
			color = selectedColor
		case m.hoverRef != nil && m.hoverRef.ID == e.ID:
			color = hoverColor
		}
		br.drawPath(devicePath(board, e.Outline()), color)
	}
	if p, ok := m.ed.Preview(); ok {
		br.drawPath(devicePath(board, p.Outline()), strokeColor(p.Stroke))
	}

	rows := br.cells()
	for _, g := range m.ed.GripPoints() {
		putCell(rows, board.ToDevice(geom.Coordinate{X: g.X, Y: g.Y}), '◆', gripColor)
	}
	if m.hovering && m.ed.Mode().IsDrawing() {
		putCell(rows, board.ToDevice(m.ed.Cursor()), '+', strokeColor(m.ed.Stroke()))
	}
	return strings.Join(joinCells(rows), "\n")
}

// putCell overwrites the cell holding a device point.
func putCell(rows [][]cell, device geom.Coordinate, r rune, fg string) {
	cx := int(math.Floor(device.X / 2))
	cy := int(math.Floor(device.Y / 4))
	if cy < 0 || cy >= len(rows) || cx < 0 || cx >= len(rows[cy]) {
		return
	}
	rows[cy][cx] = cell{r: r, fg: fg}
}

// fitBoard zooms until the board just fits a w x h cell canvas and then
// centres it.
func (m *Model) fitBoard(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	mw, mh := float64(w*2), float64(h*4)
	origin := geom.Coordinate{}
	for range 200 {
		b := m.ed.Board()
		s := b.Factor()
		if b.Width*s > mw || b.Height*s > mh {
			if !m.ed.Wheel(origin, 1) {
				break
			}
			continue
		}
		next := s * editor.ZoomStep
		if b.Width*next > mw || b.Height*next > mh || !m.ed.Wheel(origin, -1) {
			break
		}
	}
	b := m.ed.Board()
	s := b.Factor()
	tx := math.Round((mw - b.Width*s) / 2)
	ty := math.Round((mh - b.Height*s) / 2)
	m.ed.PanBy(b.OffsetX-tx, b.OffsetY-ty)
	m.fitted = true
}
