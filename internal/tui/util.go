package tui

import (
	"math"
	"strings"

	"floormap/internal/geom"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// micro rounds a device coordinate onto the braille grid.
func micro(c geom.Coordinate) [2]int {
	return [2]int{int(math.Round(c.X)), int(math.Round(c.Y))}
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
