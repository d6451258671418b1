package geom

import "fmt"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width of the box; zero for a degenerate box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height of the box; zero for a degenerate box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether c lies inside b, edges included.
func (b BBox) Contains(c Coordinate) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Union returns the smallest box holding both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Coordinate is a point in board space.
type Coordinate struct {
	X float64
	Y float64
}

func (c Coordinate) String() string { return fmt.Sprintf("%g,%g", c.X, c.Y) }

// ElementType discriminates the MapElement variants.
type ElementType int

const (
	Polyline ElementType = iota
	Rect
)

func (t ElementType) String() string {
	switch t {
	case Polyline:
		return "polyline"
	case Rect:
		return "rect"
	}
	return "unknown"
}

// ParseElementType is the inverse of ElementType.String.
func ParseElementType(s string) (ElementType, bool) {
	switch s {
	case "polyline":
		return Polyline, true
	case "rect":
		return Rect, true
	}
	return 0, false
}

// MapElement is one vector primitive of a floor plan. Points is used by
// polylines, X/Y/Width/Height by rects.
type MapElement struct {
	ID     int
	Type   ElementType
	Stroke string

	Points []Coordinate

	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ElementRef is a resolved hit on a rendered element.
type ElementRef struct {
	Type ElementType
	ID   int
}

func (r ElementRef) String() string { return fmt.Sprintf("%s-%d", r.Type, r.ID) }

// Drawing is the persisted form of a map: board size plus its elements.
type Drawing struct {
	Width       float64
	Height      float64
	MapElements []MapElement
	// SharingID links a drawing file to its library map; empty until the
	// map is stored.
	SharingID string
}
