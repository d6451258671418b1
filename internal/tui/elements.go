package tui

import (
	"fmt"
	"strconv"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"floormap/internal/editor"
	"floormap/internal/geom"
)

const geometryColWidth = 40

// elementRows lists one row per element: id, type, stroke and its WKT.
func elementRows(elements []geom.MapElement) []table.Row {
	rows := make([]table.Row, 0, len(elements))
	for _, e := range elements {
		wkt, err := geom.FormatWKT(e)
		if err != nil {
			wkt = "error: " + err.Error()
		}
		rows = append(rows, table.Row{
			strconv.Itoa(e.ID),
			e.Type.String(),
			e.Stroke,
			truncate(wkt, geometryColWidth),
		})
	}
	return rows
}

// refreshElementTable rebuilds the table from the current drawing.
func (m *Model) refreshElementTable() {
	cols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "type", Width: 9},
		{Title: "stroke", Width: 8},
		{Title: "geometry", Width: geometryColWidth},
	}
	rows := elementRows(m.ed.Elements())
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	if len(rows) == 0 {
		m.status = "no elements yet"
	}
}

// selectTableRow selects the element on the highlighted row and closes the
// table.
func (m *Model) selectTableRow() {
	row := m.tbl.SelectedRow()
	if len(row) < 2 {
		return
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return
	}
	typ, ok := geom.ParseElementType(row[1])
	if !ok {
		return
	}
	if m.ed.Mode() != editor.ModeSelect {
		m.setMode(editor.ModeSelect)
	}
	ref := geom.ElementRef{Type: typ, ID: id}
	if m.ed.ClickElement(ref) {
		m.status = "selected " + ref.String()
	} else {
		m.status = fmt.Sprintf("element %d is gone", id)
	}
	m.showTable = false
}

// elementSummary is a one-line description for the footer.
func elementSummary(e geom.MapElement) string {
	var b strings.Builder
	b.WriteString(e.Ref().String())
	bb := e.BBox()
	fmt.Fprintf(&b, " %gx%g at %s", bb.Width(), bb.Height(), geom.Coordinate{X: bb.MinX, Y: bb.MinY})
	return b.String()
}
