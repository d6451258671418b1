package tui

import "floormap/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is where each region sits on screen, in cells.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lo layout
	lo.contentW = max(10, m.width)
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	lo.mapY = headerHeight
	lo.mapW = max(10, lo.contentW-lo.mapX)
	lo.mapH = lo.contentH
	return lo
}

// inMap reports whether the screen cell (x,y) is on the canvas and returns
// the canvas-relative cell.
func (lo layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-lo.mapX, y-lo.mapY
	if cx < 0 || cy < 0 || cx >= lo.mapW || cy >= lo.mapH {
		return 0, 0, false
	}
	return cx, cy, true
}

// cellToDevice maps a canvas cell to the braille micro-pixel at its
// centre. Device space is the micro-pixel grid of the canvas.
func cellToDevice(cx, cy int) geom.Coordinate {
	return geom.Coordinate{X: float64(cx*2 + 1), Y: float64(cy*4 + 2)}
}
