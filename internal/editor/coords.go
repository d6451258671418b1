// Package editor is the interactive map editor engine: the board
// viewport, the per-mode drawing, selection and erase state machines,
// and the element store they write to.
//
// An Editor is single-threaded. Every call runs to completion and
// out-of-sequence calls are no-ops.
package editor

import (
	"math"

	"floormap/internal/geom"
)

// SnapDistance is the grid unit board coordinates snap to.
const SnapDistance = 10.0

// BoardStatus is the viewport: board size in board units, zoom scale and
// pan offset in device pixels.
type BoardStatus struct {
	Width   float64
	Height  float64
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewBoardStatus returns an unzoomed, unpanned board.
func NewBoardStatus(width, height float64) BoardStatus {
	return BoardStatus{Width: width, Height: height, Scale: 1}
}

// Factor is the effective scale; an unset scale counts as 1.
func (b BoardStatus) Factor() float64 { return b.scale() }

func (b BoardStatus) scale() float64 {
	if b.Scale <= 0 {
		return 1
	}
	return b.Scale
}

// ToWorld converts a device point to unsnapped board space.
func (b BoardStatus) ToWorld(device geom.Coordinate) geom.Coordinate {
	s := b.scale()
	return geom.Coordinate{
		X: (device.X - b.OffsetX) / s,
		Y: (device.Y - b.OffsetY) / s,
	}
}

// ToDevice converts a board coordinate to device pixels.
func (b BoardStatus) ToDevice(world geom.Coordinate) geom.Coordinate {
	s := b.scale()
	return geom.Coordinate{
		X: world.X*s + b.OffsetX,
		Y: world.Y*s + b.OffsetY,
	}
}

// Snap rounds v to the nearest multiple of SnapDistance.
func Snap(v float64) float64 {
	return math.Round(v/SnapDistance) * SnapDistance
}

// ToBoardCoordinate maps a device point into board space and snaps both
// axes to the grid.
func ToBoardCoordinate(device geom.Coordinate, board BoardStatus) geom.Coordinate {
	w := board.ToWorld(device)
	return geom.Coordinate{X: Snap(w.X), Y: Snap(w.Y)}
}
