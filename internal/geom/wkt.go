package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT parses a subset of WKT into a map element.
// Supported: LINESTRING(x y, ...) and POLYGON((x y, ...)). A polygon whose
// outer ring is an axis-aligned box becomes a rect; any other ring, and
// MULTIPOINT with at least two points, becomes a polyline through its
// vertices. Only the outer ring of a polygon is read.
func ParseWKT(wkt, stroke string) (MapElement, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return MapElement{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var pts []Coordinate
	switch {
	case strings.HasPrefix(up, "LINESTRING"), strings.HasPrefix(up, "MULTIPOINT"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return MapElement{}, errors.New("wkt linestring: invalid")
		}
		// MULTIPOINT may wrap each tuple in parentheses
		block := strings.NewReplacer("(", "", ")", "").Replace(s[i+1 : j])
		pts = parseTuples(block)
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return MapElement{}, errors.New("wkt polygon: invalid")
		}
		outer, _, _ := strings.Cut(s[i+2:j], ")")
		ring := parseTuples(outer)
		if r, ok := boxFromRing(ring, stroke); ok {
			return r, nil
		}
		pts = ring
	case strings.HasPrefix(up, "POINT"):
		return MapElement{}, errors.New("wkt point: a single point is not a map element")
	default:
		return MapElement{}, errors.New("unsupported wkt type")
	}
	if len(pts) < 2 {
		return MapElement{}, errors.New("wkt: need at least two coordinates")
	}
	return MapElement{Type: Polyline, Stroke: stroke, Points: pts}, nil
}

// FormatWKT encodes e as LINESTRING (polyline) or POLYGON (rect).
func FormatWKT(e MapElement) (string, error) {
	var b strings.Builder
	switch e.Type {
	case Polyline:
		b.WriteString("LINESTRING (")
		writeTuples(&b, e.Points)
		b.WriteString(")")
	case Rect:
		b.WriteString("POLYGON ((")
		writeTuples(&b, e.Outline())
		b.WriteString("))")
	default:
		return "", ErrUnsupportedElement
	}
	return b.String(), nil
}

func writeTuples(b *strings.Builder, pts []Coordinate) {
	for i, p := range pts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
}

func parseTuples(block string) []Coordinate {
	var out []Coordinate
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, Coordinate{X: x, Y: y})
	}
	return out
}

// boxFromRing recognises a closed 4-corner axis-aligned ring.
func boxFromRing(ring []Coordinate, stroke string) (MapElement, bool) {
	if len(ring) == 5 && ring[0] == ring[4] {
		ring = ring[:4]
	}
	if len(ring) != 4 {
		return MapElement{}, false
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return MapElement{}, false
		}
	}
	return NewRect(ring[0], ring[2], stroke), true
}
