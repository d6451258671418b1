package editor

import "floormap/internal/geom"

// GripPoint is an editing handle on a vertex of the selected element.
// Ids count from 1 within the current selection.
type GripPoint struct {
	ID           int
	MapElementID int
	X            float64
	Y            float64
}

// GripPointsFor derives the handles of e: polyline vertices in order, rect
// corners top-left, top-right, bottom-left, bottom-right.
func GripPointsFor(e geom.MapElement) []GripPoint {
	verts := e.Vertices()
	out := make([]GripPoint, 0, len(verts))
	for i, v := range verts {
		out = append(out, GripPoint{ID: i + 1, MapElementID: e.ID, X: v.X, Y: v.Y})
	}
	return out
}

// SelectionEngine holds the single selected element and its grips.
type SelectionEngine struct {
	selected int
	active   bool
	grips    []GripPoint
}

// Select makes ref the only selection. A missing id or a type that
// differs from the stored element is no match and leaves state untouched.
func (s *SelectionEngine) Select(store *ElementStore, ref geom.ElementRef) bool {
	e, ok := store.Get(ref.ID)
	if !ok || e.Type != ref.Type {
		return false
	}
	s.selected = e.ID
	s.active = true
	s.grips = GripPointsFor(e)
	return true
}

// Deselect clears the selection and its grips.
func (s *SelectionEngine) Deselect() {
	s.selected = 0
	s.active = false
	s.grips = nil
}

func (s *SelectionEngine) SelectedID() (int, bool) { return s.selected, s.active }

func (s *SelectionEngine) GripPoints() []GripPoint {
	out := make([]GripPoint, len(s.grips))
	copy(out, s.grips)
	return out
}

// DeleteSelected removes the selected element and deselects.
func (s *SelectionEngine) DeleteSelected(store *ElementStore) bool {
	if !s.active {
		return false
	}
	id := s.selected
	s.Deselect()
	return store.Remove(id)
}

// Sync re-derives the grips from the store, deselecting when the element
// is gone.
func (s *SelectionEngine) Sync(store *ElementStore) {
	if !s.active {
		return
	}
	e, ok := store.Get(s.selected)
	if !ok {
		s.Deselect()
		return
	}
	s.grips = GripPointsFor(e)
}
