package geom

import "math"

// NewLine builds a two point polyline from start to end.
func NewLine(start, end Coordinate, stroke string) MapElement {
	return MapElement{
		Type:   Polyline,
		Stroke: stroke,
		Points: []Coordinate{start, end},
	}
}

// NewRect builds a rect spanning two opposite corners. The result is
// normalized so X,Y is the top-left corner whatever the drag direction.
// A zero-area rect (start == end) is valid.
func NewRect(start, end Coordinate, stroke string) MapElement {
	return MapElement{
		Type:   Rect,
		Stroke: stroke,
		X:      math.Min(start.X, end.X),
		Y:      math.Min(start.Y, end.Y),
		Width:  math.Abs(start.X - end.X),
		Height: math.Abs(start.Y - end.Y),
	}
}

// Ref returns the typed reference for e.
func (e MapElement) Ref() ElementRef { return ElementRef{Type: e.Type, ID: e.ID} }

// Corners returns a rect's corners ordered top-left, top-right,
// bottom-left, bottom-right. Polylines have no corners.
func (e MapElement) Corners() []Coordinate {
	if e.Type != Rect {
		return nil
	}
	return []Coordinate{
		{X: e.X, Y: e.Y},
		{X: e.X + e.Width, Y: e.Y},
		{X: e.X, Y: e.Y + e.Height},
		{X: e.X + e.Width, Y: e.Y + e.Height},
	}
}

// Vertices returns the editable vertices of e: polyline points in order,
// rect corners as in Corners.
func (e MapElement) Vertices() []Coordinate {
	if e.Type == Rect {
		return e.Corners()
	}
	out := make([]Coordinate, len(e.Points))
	copy(out, e.Points)
	return out
}

// Outline returns the closed path drawn for e. For a rect the ring runs
// clockwise from the top-left corner and repeats it at the end.
func (e MapElement) Outline() []Coordinate {
	if e.Type != Rect {
		return e.Vertices()
	}
	return []Coordinate{
		{X: e.X, Y: e.Y},
		{X: e.X + e.Width, Y: e.Y},
		{X: e.X + e.Width, Y: e.Y + e.Height},
		{X: e.X, Y: e.Y + e.Height},
		{X: e.X, Y: e.Y},
	}
}

// BBox returns the bounds of e.
func (e MapElement) BBox() BBox {
	if e.Type == Rect {
		return BBox{MinX: e.X, MinY: e.Y, MaxX: e.X + e.Width, MaxY: e.Y + e.Height}
	}
	var bb BBox
	for i, p := range e.Points {
		if i == 0 {
			bb = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			continue
		}
		bb = bb.Union(BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}
	return bb
}

// Clone returns a deep copy of e.
func (e MapElement) Clone() MapElement {
	if e.Points != nil {
		pts := make([]Coordinate, len(e.Points))
		copy(pts, e.Points)
		e.Points = pts
	}
	return e
}

// Valid reports whether e satisfies its variant's shape rules.
func (e MapElement) Valid() bool {
	switch e.Type {
	case Polyline:
		return len(e.Points) >= 2
	case Rect:
		return e.Width >= 0 && e.Height >= 0
	}
	return false
}

// Distance returns the shortest distance from c to the stroked outline of e.
func (e MapElement) Distance(c Coordinate) float64 {
	path := e.Outline()
	if len(path) == 0 {
		return math.Inf(1)
	}
	if len(path) == 1 {
		return math.Hypot(c.X-path[0].X, c.Y-path[0].Y)
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(path); i++ {
		if d := DistanceToSegment(c, path[i], path[i+1]); d < best {
			best = d
		}
	}
	return best
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b Coordinate) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// DrawingBBox returns the bounds of all elements, false when there are none.
func DrawingBBox(elements []MapElement) (BBox, bool) {
	var bb BBox
	ok := false
	for _, e := range elements {
		if !e.Valid() {
			continue
		}
		if !ok {
			bb = e.BBox()
			ok = true
			continue
		}
		bb = bb.Union(e.BBox())
	}
	return bb, ok
}
