package editor

import "slices"

// EraserEngine collects the elements an erase gesture passes over and
// removes them together when the gesture ends.
type EraserEngine struct {
	active  bool
	touched []int
}

// Start opens a session. A second Start while open is a no-op.
func (e *EraserEngine) Start() bool {
	if e.active {
		return false
	}
	e.active = true
	e.touched = nil
	return true
}

// Hover marks id for removal. Outside a session, or for an id already
// marked, nothing changes.
func (e *EraserEngine) Hover(id int) bool {
	if !e.active || slices.Contains(e.touched, id) {
		return false
	}
	e.touched = append(e.touched, id)
	return true
}

// End removes every touched element in one batch and closes the session.
// It returns the ids that were removed.
func (e *EraserEngine) End(store *ElementStore) []int {
	if !e.active {
		return nil
	}
	ids := e.touched
	e.Abort()
	if len(ids) == 0 {
		return nil
	}
	removed := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := store.Get(id); ok {
			removed = append(removed, id)
		}
	}
	store.RemoveAll(removed)
	return removed
}

// Abort closes the session without removing anything.
func (e *EraserEngine) Abort() {
	e.active = false
	e.touched = nil
}

func (e *EraserEngine) Active() bool { return e.active }

// Touched lists the marked ids in the order they were hovered.
func (e *EraserEngine) Touched() []int { return slices.Clone(e.touched) }

func (e *EraserEngine) IsTouched(id int) bool { return slices.Contains(e.touched, id) }
