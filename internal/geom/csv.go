package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

var csvHeader = []string{"id", "type", "stroke", "x", "y", "width", "height", "points"}

// WriteCSV writes one row per element. Rect rows fill x/y/width/height,
// polyline rows fill points as space separated "x,y" pairs.
func WriteCSV(w io.Writer, elements []MapElement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, e := range elements {
		row := []string{strconv.Itoa(e.ID), e.Type.String(), e.Stroke, "", "", "", "", ""}
		switch e.Type {
		case Rect:
			row[3], row[4], row[5], row[6] = ff(e.X), ff(e.Y), ff(e.Width), ff(e.Height)
		case Polyline:
			pts := make([]string, 0, len(e.Points))
			for _, p := range e.Points {
				pts = append(pts, formatPoint(p))
			}
			row[7] = strings.Join(pts, " ")
		default:
			return ErrUnsupportedElement
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadCSV reads elements written by WriteCSV. Columns are found by header
// name (case-insensitive); rows that do not form a valid element are
// skipped.
func LoadCSV(path string) ([]MapElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV over an open reader.
func ReadCSV(r io.Reader) ([]MapElement, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idx := make(map[string]int, len(recs[0]))
	for i, h := range recs[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx["type"]; !ok {
		return nil, errors.New("csv: type column not found")
	}
	col := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, name string) float64 {
		v, _ := strconv.ParseFloat(col(row, name), 64)
		return v
	}
	var out []MapElement
	for _, row := range recs[1:] {
		t, ok := ParseElementType(col(row, "type"))
		if !ok {
			continue
		}
		id, _ := strconv.Atoi(col(row, "id"))
		e := MapElement{ID: id, Type: t, Stroke: col(row, "stroke")}
		switch t {
		case Rect:
			e.X, e.Y, e.Width, e.Height = num(row, "x"), num(row, "y"), num(row, "width"), num(row, "height")
		case Polyline:
			for _, tok := range strings.Fields(col(row, "points")) {
				if p, ok := ParsePoint(tok); ok {
					e.Points = append(e.Points, p)
				}
			}
		}
		if e.Valid() {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid elements parsed")
	}
	return out, nil
}
