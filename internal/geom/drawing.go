package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrEmptyDrawing       = errors.New("drawing: no board size or elements found")
	ErrUnsupportedElement = errors.New("unsupported element")
)

type polylineJSON struct {
	ID     int      `json:"id"`
	Type   string   `json:"type"`
	Stroke string   `json:"stroke"`
	Points []string `json:"points"`
}

type rectJSON struct {
	ID     int     `json:"id"`
	Type   string  `json:"type"`
	Stroke string  `json:"stroke"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type drawingJSON struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	MapElements []any   `json:"mapElements"`
	SharingID   string  `json:"sharingMapId,omitempty"`
}

// MarshalElement encodes one element in the map drawing format.
// Polyline points are "x,y" strings.
func MarshalElement(e MapElement) ([]byte, error) {
	v, err := elementValue(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func elementValue(e MapElement) (any, error) {
	switch e.Type {
	case Polyline:
		pts := make([]string, 0, len(e.Points))
		for _, p := range e.Points {
			pts = append(pts, formatPoint(p))
		}
		return polylineJSON{ID: e.ID, Type: e.Type.String(), Stroke: e.Stroke, Points: pts}, nil
	case Rect:
		return rectJSON{ID: e.ID, Type: e.Type.String(), Stroke: e.Stroke, X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}, nil
	}
	return nil, fmt.Errorf("element %d: %w", e.ID, ErrUnsupportedElement)
}

// EncodeDrawing encodes d as a map drawing document.
func EncodeDrawing(d Drawing) ([]byte, error) {
	doc := drawingJSON{Width: d.Width, Height: d.Height, MapElements: make([]any, 0, len(d.MapElements)), SharingID: d.SharingID}
	for _, e := range d.MapElements {
		v, err := elementValue(e)
		if err != nil {
			return nil, err
		}
		doc.MapElements = append(doc.MapElements, v)
	}
	return json.Marshal(doc)
}

// DecodeDrawing reads a map drawing document. Decoding is tolerant: width
// and height may be numbers or numeric strings, points may be "x,y"
// strings, [x,y] pairs or {x,y} objects, and malformed elements are
// skipped.
func DecodeDrawing(data []byte) (Drawing, error) {
	if !gjson.ValidBytes(data) {
		return Drawing{}, errors.New("drawing: invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Drawing{}, errors.New("drawing: document is not an object")
	}
	var d Drawing
	d.Width = root.Get("width").Float()
	d.Height = root.Get("height").Float()
	d.SharingID = root.Get("sharingMapId").String()
	root.Get("mapElements").ForEach(func(_, v gjson.Result) bool {
		if e, ok := parseElement(v); ok {
			d.MapElements = append(d.MapElements, e)
		}
		return true
	})
	if d.Width <= 0 && d.Height <= 0 && len(d.MapElements) == 0 {
		return Drawing{}, ErrEmptyDrawing
	}
	return d, nil
}

// UnmarshalElement decodes a single element.
func UnmarshalElement(data []byte) (MapElement, error) {
	if !gjson.ValidBytes(data) {
		return MapElement{}, errors.New("element: invalid json")
	}
	e, ok := parseElement(gjson.ParseBytes(data))
	if !ok {
		return MapElement{}, ErrUnsupportedElement
	}
	return e, nil
}

func parseElement(v gjson.Result) (MapElement, bool) {
	t, ok := ParseElementType(v.Get("type").String())
	if !ok {
		return MapElement{}, false
	}
	e := MapElement{
		ID:     int(v.Get("id").Int()),
		Type:   t,
		Stroke: v.Get("stroke").String(),
	}
	switch t {
	case Polyline:
		v.Get("points").ForEach(func(_, p gjson.Result) bool {
			if c, ok := parsePoint(p); ok {
				e.Points = append(e.Points, c)
			}
			return true
		})
	case Rect:
		e.X = v.Get("x").Float()
		e.Y = v.Get("y").Float()
		e.Width = v.Get("width").Float()
		e.Height = v.Get("height").Float()
	}
	return e, e.Valid()
}

func parsePoint(p gjson.Result) (Coordinate, bool) {
	switch {
	case p.Type == gjson.String:
		return ParsePoint(p.String())
	case p.IsArray():
		a := p.Array()
		if len(a) < 2 || a[0].Type != gjson.Number || a[1].Type != gjson.Number {
			return Coordinate{}, false
		}
		return Coordinate{X: a[0].Float(), Y: a[1].Float()}, true
	case p.IsObject():
		x, y := p.Get("x"), p.Get("y")
		if !x.Exists() || !y.Exists() {
			return Coordinate{}, false
		}
		return Coordinate{X: x.Float(), Y: y.Float()}, true
	}
	return Coordinate{}, false
}

// ParsePoint parses an "x,y" string.
func ParsePoint(s string) (Coordinate, bool) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coordinate{}, false
	}
	x, err1 := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err1 != nil || err2 != nil {
		return Coordinate{}, false
	}
	return Coordinate{X: x, Y: y}, true
}

func formatPoint(c Coordinate) string {
	return strconv.FormatFloat(c.X, 'f', -1, 64) + "," + strconv.FormatFloat(c.Y, 'f', -1, 64)
}

// LoadDrawing reads a map drawing JSON file.
func LoadDrawing(path string) (Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Drawing{}, err
	}
	return DecodeDrawing(data)
}

// SaveDrawing writes d to path as JSON.
func SaveDrawing(path string, d Drawing) error {
	data, err := EncodeDrawing(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
