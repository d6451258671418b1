package geom

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultStroke is the color new elements are drawn with.
const DefaultStroke = "#333333"

// StrokeColors are the colors offered by the stroke picker, in order.
var StrokeColors = []string{
	"#333333", // black
	"#EB3933", // red
	"#FF7515", // orange
	"#FFEE58", // yellow
	"#5CAC1E", // green
	"#6BC2F9", // light blue
	"#0060FF", // blue
	"#8B5CF6", // purple
	"#A1A1AA", // gray
}

// SpaceColors are the fill colors offered for reservation spaces.
var SpaceColors = []string{
	"#EB3933",
	"#FF7515",
	"#FFEE58",
	"#5CAC1E",
	"#6BC2F9",
	"#0060FF",
	"#8B5CF6",
}

// IsStrokeColor reports whether c is one of StrokeColors (case-insensitive).
func IsStrokeColor(c string) bool {
	for _, s := range StrokeColors {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}

// NextStroke returns the palette color following c, wrapping around.
// Unknown colors restart at the first entry.
func NextStroke(c string) string {
	for i, s := range StrokeColors {
		if strings.EqualFold(s, c) {
			return StrokeColors[(i+1)%len(StrokeColors)]
		}
	}
	return StrokeColors[0]
}

// ParseHexColor parses "#RGB" or "#RRGGBB".
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
