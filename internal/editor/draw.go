package editor

import "floormap/internal/geom"

// DrawingStatus holds the anchor of a line or rect gesture. Start is nil
// when no gesture is in progress.
type DrawingStatus struct {
	Start *geom.Coordinate
}

func (d DrawingStatus) Active() bool { return d.Start != nil }

// DrawingEngine builds a new element across pointer down, move and up.
type DrawingEngine struct {
	status DrawingStatus
}

// Start anchors a gesture at c. It is a no-op while a gesture is active.
func (d *DrawingEngine) Start(c geom.Coordinate) bool {
	if d.status.Active() {
		return false
	}
	d.status.Start = &c
	return true
}

// End closes the gesture at c and returns the element to commit. Without
// an active gesture, or outside a drawing mode, nothing is produced.
func (d *DrawingEngine) End(mode Mode, c geom.Coordinate, stroke string) (geom.MapElement, bool) {
	if !d.status.Active() {
		return geom.MapElement{}, false
	}
	start := *d.status.Start
	d.status.Start = nil
	return shapeFor(mode, start, c, stroke)
}

// Abort drops any in-progress gesture.
func (d *DrawingEngine) Abort() { d.status.Start = nil }

// Status returns a copy of the current status.
func (d *DrawingEngine) Status() DrawingStatus {
	if d.status.Start == nil {
		return DrawingStatus{}
	}
	c := *d.status.Start
	return DrawingStatus{Start: &c}
}

// Preview is the uncommitted element from the anchor to live.
func (d *DrawingEngine) Preview(mode Mode, live geom.Coordinate, stroke string) (geom.MapElement, bool) {
	if !d.status.Active() {
		return geom.MapElement{}, false
	}
	return shapeFor(mode, *d.status.Start, live, stroke)
}

func shapeFor(mode Mode, start, end geom.Coordinate, stroke string) (geom.MapElement, bool) {
	switch mode {
	case ModeLine:
		return geom.NewLine(start, end, stroke), true
	case ModeRect:
		return geom.NewRect(start, end, stroke), true
	}
	return geom.MapElement{}, false
}
