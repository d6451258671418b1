package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cell is one rendered character of the canvas.
type cell struct {
	r  rune
	fg string
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	fg   [][]string
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	fg := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		fg[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, fg: fg}
}

// dotBits maps a micro-pixel inside a cell (column, row) to its braille dot.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel (2x4 per cell). The last color written to a
// cell wins.
func (b *brailleBuf) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
	b.fg[cy][cx] = color
}

// drawLine draws a line on the microgrid using Bresenham.
func (b *brailleBuf) drawLine(x0, y0, x1, y1 int, color string) {
	if !b.lineVisible(x0, y0, x1, y1) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// lineVisible rejects segments entirely off one side of the grid.
func (b *brailleBuf) lineVisible(x0, y0, x1, y1 int) bool {
	wm, hm := b.w*2, b.h*4
	switch {
	case x0 < 0 && x1 < 0, y0 < 0 && y1 < 0:
		return false
	case x0 >= wm && x1 >= wm, y0 >= hm && y1 >= hm:
		return false
	}
	return true
}

// drawPath joins consecutive micro points.
func (b *brailleBuf) drawPath(pts [][2]int, color string) {
	if len(pts) == 1 {
		b.setPixel(pts[0][0], pts[0][1], color)
		return
	}
	for i := 1; i < len(pts); i++ {
		b.drawLine(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], color)
	}
}

func (b *brailleBuf) cells() [][]cell {
	out := make([][]cell, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]cell, b.w)
		for x := 0; x < b.w; x++ {
			if mask := b.m[y][x]; mask != 0 {
				row[x] = cell{r: rune(0x2800 + int(mask)), fg: b.fg[y][x]}
			} else {
				row[x] = cell{r: ' '}
			}
		}
		out[y] = row
	}
	return out
}

// joinCells renders rows, styling runs of equal color together.
func joinCells(rows [][]cell) []string {
	out := make([]string, len(rows))
	var sb, run strings.Builder
	for y, row := range rows {
		sb.Reset()
		cur := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cur)).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.fg != cur {
				flush()
				cur = c.fg
			}
			run.WriteRune(c.r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
