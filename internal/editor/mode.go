package editor

import (
	"slices"
	"strings"
)

// Mode is the active tool.
type Mode int

const (
	ModeSelect Mode = iota
	ModeMove
	ModeLine
	ModeRect
	ModeEraser
)

// Modes lists every mode in toolbar order.
var Modes = []Mode{ModeSelect, ModeMove, ModeLine, ModeRect, ModeEraser}

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeMove:
		return "move"
	case ModeLine:
		return "line"
	case ModeRect:
		return "rect"
	case ModeEraser:
		return "eraser"
	}
	return "unknown"
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// IsDrawing reports whether m builds new elements.
func (m Mode) IsDrawing() bool { return m == ModeLine || m == ModeRect }

// Gate says which kinds of input currently reach the board and the
// elements on it.
type Gate struct {
	BoardDraggable       bool
	ElementClickable     bool
	ElementEventsEnabled bool
}

// DeriveGate computes the gate for a mode and set of held keys. Holding
// Space turns any mode into a temporary pan.
func DeriveGate(mode Mode, held []Key) Gate {
	draggable := mode == ModeMove || slices.Contains(held, KeySpace)
	return Gate{
		BoardDraggable:       draggable,
		ElementClickable:     mode == ModeSelect && !draggable,
		ElementEventsEnabled: (mode == ModeSelect || mode == ModeEraser) && !draggable,
	}
}
