package editor

import "floormap/internal/geom"

const (
	// PanMargin is how far past the scaled board edge the offset may go.
	PanMargin = 200.0
	ZoomStep  = 1.1
	MinScale  = 0.1
	MaxScale  = 10.0
)

// PanZoomController drives the viewport from drags and wheel steps.
type PanZoomController struct {
	moving bool
	last   geom.Coordinate
}

// StartDrag begins a pan at the device point p.
func (p *PanZoomController) StartDrag(device geom.Coordinate) {
	p.moving = true
	p.last = device
}

// Drag moves the board with the pointer: the delta previous-current is
// subtracted from the offset, then the offset is clamped.
func (p *PanZoomController) Drag(board *BoardStatus, device geom.Coordinate) bool {
	if !p.moving {
		return false
	}
	dx := p.last.X - device.X
	dy := p.last.Y - device.Y
	p.last = device
	return Pan(board, dx, dy)
}

// Pan subtracts the delta from the offset and clamps the result.
func Pan(board *BoardStatus, dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	board.OffsetX -= dx
	board.OffsetY -= dy
	ClampOffset(board)
	return true
}

func (p *PanZoomController) EndDrag() { p.moving = false }

func (p *PanZoomController) IsMoving() bool { return p.moving }

// ClampOffset keeps each offset axis within size*scale+PanMargin of zero.
func ClampOffset(board *BoardStatus) {
	s := board.scale()
	board.OffsetX = clamp(board.OffsetX, board.Width*s+PanMargin)
	board.OffsetY = clamp(board.OffsetY, board.Height*s+PanMargin)
}

func clamp(v, limit float64) float64 {
	return max(-limit, min(limit, v))
}

// Zoom applies one wheel step around the device anchor. A negative delta
// zooms in, a positive one out, zero does nothing. The board point under
// the anchor stays under it. It reports whether the scale changed.
func Zoom(board *BoardStatus, anchor geom.Coordinate, delta float64) bool {
	if delta == 0 {
		return false
	}
	old := board.scale()
	next := old * ZoomStep
	if delta > 0 {
		next = old / ZoomStep
	}
	next = max(MinScale, min(MaxScale, next))
	if next == old {
		return false
	}
	world := board.ToWorld(anchor)
	board.Scale = next
	board.OffsetX = anchor.X - world.X*next
	board.OffsetY = anchor.Y - world.Y*next
	return true
}
