package editor

import "floormap/internal/geom"

// Editor owns the state of one map being edited and routes input to the
// active tool.
type Editor struct {
	store  *ElementStore
	board  BoardStatus
	mode   Mode
	stroke string
	cursor geom.Coordinate

	keys   KeyTracker
	draw   DrawingEngine
	sel    SelectionEngine
	eraser EraserEngine
	pz     PanZoomController
}

// New returns an editor in Select mode over an empty board of the given
// size, drawing with the default stroke.
func New(width, height float64) *Editor {
	return &Editor{
		store:  NewElementStore(),
		board:  NewBoardStatus(width, height),
		mode:   ModeSelect,
		stroke: geom.DefaultStroke,
	}
}

// PointerDown starts a pan when the board is draggable, otherwise the
// active tool's gesture.
func (e *Editor) PointerDown(device geom.Coordinate) {
	if e.pz.IsMoving() {
		return
	}
	if e.Gate().BoardDraggable {
		e.pz.StartDrag(device)
		return
	}
	e.cursor = ToBoardCoordinate(device, e.board)
	switch e.mode {
	case ModeLine, ModeRect:
		e.draw.Start(e.cursor)
	case ModeEraser:
		e.eraser.Start()
	}
}

// PointerMove pans while a drag is active and tracks the cursor otherwise.
func (e *Editor) PointerMove(device geom.Coordinate) {
	if e.pz.IsMoving() {
		e.pz.Drag(&e.board, device)
		return
	}
	e.cursor = ToBoardCoordinate(device, e.board)
}

// PointerUp ends a pan, commits a drawing gesture, or closes an erase
// session.
func (e *Editor) PointerUp(device geom.Coordinate) {
	if e.pz.IsMoving() {
		e.pz.EndDrag()
		return
	}
	e.cursor = ToBoardCoordinate(device, e.board)
	switch e.mode {
	case ModeLine, ModeRect:
		if el, ok := e.draw.End(e.mode, e.cursor, e.stroke); ok {
			e.store.Add(el)
		}
	case ModeEraser:
		if removed := e.eraser.End(e.store); len(removed) > 0 {
			e.sel.Sync(e.store)
		}
	}
}

// ClickBoard is a click on empty board. It always deselects.
func (e *Editor) ClickBoard() {
	e.sel.Deselect()
}

// ClickElement selects ref when elements are clickable.
func (e *Editor) ClickElement(ref geom.ElementRef) bool {
	if !e.Gate().ElementClickable {
		return false
	}
	return e.sel.Select(e.store, ref)
}

// HoverElement marks ref for erasing during an erase session.
func (e *Editor) HoverElement(ref geom.ElementRef) bool {
	if e.mode != ModeEraser || !e.Gate().ElementEventsEnabled {
		return false
	}
	el, ok := e.store.Get(ref.ID)
	if !ok || el.Type != ref.Type {
		return false
	}
	return e.eraser.Hover(el.ID)
}

// Wheel zooms around the device anchor.
func (e *Editor) Wheel(anchor geom.Coordinate, delta float64) bool {
	return Zoom(&e.board, anchor, delta)
}

// PanBy moves the view by a device delta, as a drag from (dx,dy) to the
// origin would.
func (e *Editor) PanBy(dx, dy float64) bool {
	return Pan(&e.board, dx, dy)
}

// KeyDown records k as held. Delete and Backspace remove the selection in
// Select mode.
func (e *Editor) KeyDown(k Key) {
	if !e.keys.Press(k) {
		return
	}
	if (k == KeyDelete || k == KeyBackspace) && e.mode == ModeSelect {
		e.DeleteSelected()
	}
}

// KeyUp releases k. Releasing Space outside Move mode ends any pan drag.
func (e *Editor) KeyUp(k Key) {
	if !e.keys.Release(k) {
		return
	}
	if k == KeySpace && !e.Gate().BoardDraggable {
		e.pz.EndDrag()
	}
}

// SelectMode switches tools. Any gesture in flight is dropped first, and
// leaving Select mode clears the selection.
func (e *Editor) SelectMode(m Mode) {
	e.draw.Abort()
	e.eraser.Abort()
	e.pz.EndDrag()
	if m != ModeSelect {
		e.sel.Deselect()
	}
	e.mode = m
}

// SetStroke sets the color used for new elements. Empty strings are
// ignored.
func (e *Editor) SetStroke(color string) {
	if color == "" {
		return
	}
	e.stroke = color
}

// ResizeBoard changes the board size. Non-positive sizes are ignored.
func (e *Editor) ResizeBoard(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.board.Width = width
	e.board.Height = height
	ClampOffset(&e.board)
}

// DeleteSelected removes the selected element and clears the selection.
func (e *Editor) DeleteSelected() bool {
	return e.sel.DeleteSelected(e.store)
}

// RecolorElement gives one element a new stroke in place.
func (e *Editor) RecolorElement(id int, color string) bool {
	el, ok := e.store.Get(id)
	if !ok || color == "" || el.Stroke == color {
		return false
	}
	el.Stroke = color
	return e.store.Replace(el)
}

// AddElement stores a complete element under a fresh id, as if drawn.
func (e *Editor) AddElement(el geom.MapElement) (geom.MapElement, bool) {
	if !el.Valid() {
		return geom.MapElement{}, false
	}
	if el.Stroke == "" {
		el.Stroke = e.stroke
	}
	return e.store.Add(el), true
}

func (e *Editor) Elements() []geom.MapElement { return e.store.Elements() }

// Element returns a copy of one element.
func (e *Editor) Element(id int) (geom.MapElement, bool) { return e.store.Get(id) }

func (e *Editor) Board() BoardStatus { return e.board }

func (e *Editor) Drawing() DrawingStatus { return e.draw.Status() }

// Preview is the element the current drawing gesture would commit at the
// cursor.
func (e *Editor) Preview() (geom.MapElement, bool) {
	return e.draw.Preview(e.mode, e.cursor, e.stroke)
}

// Cursor is the last snapped board coordinate seen.
func (e *Editor) Cursor() geom.Coordinate { return e.cursor }

func (e *Editor) SelectedID() (int, bool) { return e.sel.SelectedID() }

func (e *Editor) GripPoints() []GripPoint { return e.sel.GripPoints() }

// Erasing lists the ids marked by the open erase session.
func (e *Editor) Erasing() []int { return e.eraser.Touched() }

// IsErasing reports whether the open erase session has marked id.
func (e *Editor) IsErasing(id int) bool { return e.eraser.IsTouched(id) }

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) Stroke() string { return e.stroke }

func (e *Editor) Gate() Gate { return DeriveGate(e.mode, e.keys.Held()) }

func (e *Editor) IsHeld(k Key) bool { return e.keys.IsHeld(k) }

func (e *Editor) IsMoving() bool { return e.pz.IsMoving() }

// Subscribe runs fn after every element change.
func (e *Editor) Subscribe(fn func([]geom.MapElement)) func() {
	return e.store.Subscribe(fn)
}

// Snapshot is the persisted form of the current map.
func (e *Editor) Snapshot() geom.Drawing {
	return geom.Drawing{
		Width:       e.board.Width,
		Height:      e.board.Height,
		MapElements: e.store.Elements(),
	}
}

// Load replaces the map. Gestures, held keys and selection are dropped;
// the board keeps its size when d carries none.
func (e *Editor) Load(d geom.Drawing) {
	e.draw.Abort()
	e.eraser.Abort()
	e.pz.EndDrag()
	e.keys.Reset()
	e.sel.Deselect()
	if d.Width > 0 && d.Height > 0 {
		e.board.Width = d.Width
		e.board.Height = d.Height
	}
	e.store.Load(d.MapElements)
}
