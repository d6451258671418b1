package tui

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"floormap/internal/config"
	"floormap/internal/editor"
	"floormap/internal/geom"
	"floormap/internal/repository"
	"floormap/internal/space"
)

func newTestModel(t *testing.T, repo *repository.Repository) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.SaveDirectory = t.TempDir()
	m := New(Options{Config: cfg, Repo: repo})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func press(m Model, keys string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return next.(Model)
}

func mouse(m Model, x, y int, action tea.MouseAction, button tea.MouseButton) Model {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return next.(Model)
}

func TestLayout(t *testing.T) {
	m := Model{width: 100, height: 30}
	lo := m.layout()
	if lo.mapX != 0 || lo.mapY != headerHeight || lo.mapW != 100 || lo.mapH != 27 {
		t.Errorf("unexpected layout %+v", lo)
	}
	if _, _, ok := lo.inMap(5, 0); ok {
		t.Error("expected header row outside the canvas")
	}
	if cx, cy, ok := lo.inMap(5, 3); !ok || cx != 5 || cy != 2 {
		t.Errorf("expected cell 5,2, got %d,%d %v", cx, cy, ok)
	}

	m.showSidebar = true
	lo = m.layout()
	if lo.mapX != sidebarWidth+1 || lo.mapW != 100-sidebarWidth-1 {
		t.Errorf("unexpected layout with sidebar %+v", lo)
	}
	if _, _, ok := lo.inMap(3, 3); ok {
		t.Error("expected sidebar cells outside the canvas")
	}
}

func TestCellToDevice(t *testing.T) {
	if got := cellToDevice(3, 2); got != (geom.Coordinate{X: 7, Y: 10}) {
		t.Errorf("expected 7,10, got %v", got)
	}
}

func TestHitTest(t *testing.T) {
	ed := editor.New(800, 600)
	ed.Load(geom.Drawing{MapElements: []geom.MapElement{
		{ID: 1, Type: geom.Rect, X: 100, Y: 100, Width: 200, Height: 100},
		{ID: 2, Type: geom.Polyline, Points: []geom.Coordinate{{X: 100, Y: 100}, {X: 300, Y: 100}}},
	}})

	tests := []struct {
		name   string
		device geom.Coordinate
		want   geom.ElementRef
		hit    bool
	}{
		{"shared edge picks topmost", geom.Coordinate{X: 150, Y: 101}, geom.ElementRef{Type: geom.Polyline, ID: 2}, true},
		{"rect only edge", geom.Coordinate{X: 299, Y: 150}, geom.ElementRef{Type: geom.Rect, ID: 1}, true},
		{"inside is not a hit", geom.Coordinate{X: 200, Y: 150}, geom.ElementRef{}, false},
		{"far away", geom.Coordinate{X: 700, Y: 500}, geom.ElementRef{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := hitTest(ed, tt.device)
			if ok != tt.hit || ref != tt.want {
				t.Errorf("expected %v %v, got %v %v", tt.want, tt.hit, ref, ok)
			}
		})
	}

	// tolerance is in screen space, so zooming out widens it in board units
	ed.Wheel(geom.Coordinate{}, 1)
	ed.Wheel(geom.Coordinate{}, 1)
	b := ed.Board()
	near := b.ToDevice(geom.Coordinate{X: 299, Y: 150})
	if _, ok := hitTest(ed, near); !ok {
		t.Error("expected a hit after zooming out")
	}
}

func TestFitBoard(t *testing.T) {
	m := newTestModel(t, nil)
	lo := m.layout()
	b := m.ed.Board()
	s := b.Factor()
	if b.Width*s > float64(lo.mapW*2) || b.Height*s > float64(lo.mapH*4) {
		t.Errorf("board does not fit: scale %g", s)
	}
	if b.Width*s*editor.ZoomStep <= float64(lo.mapW*2) && b.Height*s*editor.ZoomStep <= float64(lo.mapH*4) {
		t.Errorf("board could be one step larger: scale %g", s)
	}
	if b.OffsetX < 0 || b.OffsetY < 0 {
		t.Errorf("expected the board centred, got offset %g,%g", b.OffsetX, b.OffsetY)
	}
}

func TestModeKeys(t *testing.T) {
	m := newTestModel(t, nil)
	tests := []struct {
		key  string
		want editor.Mode
	}{
		{"4", editor.ModeRect},
		{"l", editor.ModeLine},
		{"e", editor.ModeEraser},
		{"2", editor.ModeMove},
		{"v", editor.ModeSelect},
	}
	for _, tt := range tests {
		m = press(m, tt.key)
		if m.ed.Mode() != tt.want {
			t.Errorf("key %q: expected %v, got %v", tt.key, tt.want, m.ed.Mode())
		}
	}

	m = press(m, "c")
	if m.ed.Stroke() != geom.NextStroke(geom.DefaultStroke) {
		t.Errorf("expected the next stroke, got %s", m.ed.Stroke())
	}
}

// zoneAt renders the view and waits for the zone manager to record id.
func zoneAt(t *testing.T, m Model, id string) *zone.ZoneInfo {
	t.Helper()
	m.View()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if z := zone.Get(id); !z.IsZero() {
			return z
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("zone %q never recorded", id)
	return nil
}

func TestToolbarClick(t *testing.T) {
	m := newTestModel(t, nil)
	line := zoneAt(t, m, m.modeZone(editor.ModeLine))
	if line.StartY != 0 {
		t.Errorf("expected the line button on the header row, got row %d", line.StartY)
	}
	m = mouse(m, line.StartX, 0, tea.MouseActionPress, tea.MouseButtonLeft)
	if m.ed.Mode() != editor.ModeLine {
		t.Errorf("expected line mode, got %v", m.ed.Mode())
	}

	stroke := zoneAt(t, m, m.strokeZone())
	m = mouse(m, stroke.EndX, 0, tea.MouseActionPress, tea.MouseButtonLeft)
	if m.ed.Stroke() == geom.DefaultStroke {
		t.Error("expected the color button to cycle the stroke")
	}

	// the title is not a button
	m = mouse(m, 0, 0, tea.MouseActionPress, tea.MouseButtonLeft)
	if m.ed.Mode() != editor.ModeLine {
		t.Errorf("expected the title to be inert, got %v", m.ed.Mode())
	}
}

func TestMouseDrawsRect(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "r")
	board := m.ed.Board()
	start := editor.ToBoardCoordinate(cellToDevice(10, 5), board)
	end := editor.ToBoardCoordinate(cellToDevice(30, 15), board)

	m = mouse(m, 10, 6, tea.MouseActionPress, tea.MouseButtonLeft)
	m = mouse(m, 20, 10, tea.MouseActionMotion, tea.MouseButtonLeft)
	if _, ok := m.ed.Preview(); !ok {
		t.Error("expected a preview while dragging")
	}
	m = mouse(m, 30, 16, tea.MouseActionRelease, tea.MouseButtonLeft)

	els := m.ed.Elements()
	if len(els) != 1 {
		t.Fatalf("expected 1 element, got %d", len(els))
	}
	want := geom.NewRect(start, end, geom.DefaultStroke)
	got := els[0]
	if got.Type != geom.Rect || got.X != want.X || got.Y != want.Y || got.Width != want.Width || got.Height != want.Height {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if !strings.HasPrefix(m.status, "added rect-") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestMouseSelectAndDelete(t *testing.T) {
	m := newTestModel(t, nil)
	board := m.ed.Board()
	a := editor.ToBoardCoordinate(cellToDevice(10, 5), board)
	b := editor.ToBoardCoordinate(cellToDevice(40, 5), board)
	m.ed.AddElement(geom.NewLine(a, b, ""))

	on := board.ToDevice(geom.Coordinate{X: (a.X + b.X) / 2, Y: a.Y})
	cx, cy := int(on.X)/2, int(on.Y)/4
	m = mouse(m, cx, cy+headerHeight, tea.MouseActionPress, tea.MouseButtonLeft)
	m = mouse(m, cx, cy+headerHeight, tea.MouseActionRelease, tea.MouseButtonLeft)
	if _, ok := m.ed.SelectedID(); !ok {
		t.Fatal("expected the line to be selected")
	}
	if len(m.ed.GripPoints()) != 2 {
		t.Errorf("expected 2 grips, got %d", len(m.ed.GripPoints()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	m = next.(Model)
	if len(m.ed.Elements()) != 0 {
		t.Error("expected delete to remove the selection")
	}
	if m.ed.IsHeld(editor.KeyDelete) {
		t.Error("expected delete to be released")
	}
}

func TestSpaceTogglesPan(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "r")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if !m.ed.Gate().BoardDraggable {
		t.Fatal("expected space to hold the pan")
	}

	before := m.ed.Board()
	m = mouse(m, 10, 10, tea.MouseActionPress, tea.MouseButtonLeft)
	m = mouse(m, 14, 12, tea.MouseActionMotion, tea.MouseButtonLeft)
	m = mouse(m, 14, 12, tea.MouseActionRelease, tea.MouseButtonLeft)
	after := m.ed.Board()
	if after.OffsetX != before.OffsetX+8 || after.OffsetY != before.OffsetY+8 {
		t.Errorf("expected the board to follow the pointer, got %+v -> %+v", before, after)
	}
	if len(m.ed.Elements()) != 0 {
		t.Error("expected no element while panning")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if m.ed.IsHeld(editor.KeySpace) {
		t.Error("expected a second space to release the pan")
	}
}

func TestAddWKT(t *testing.T) {
	m := newTestModel(t, nil)
	m.addWKT("LINESTRING (0 0, 10 10)\n\nPOLYGON ((0 0, 20 0, 20 10, 0 10, 0 0))\nnonsense")
	els := m.ed.Elements()
	if len(els) != 2 || els[0].Type != geom.Polyline || els[1].Type != geom.Rect {
		t.Fatalf("unexpected elements %+v", els)
	}
	if els[0].Stroke != m.ed.Stroke() {
		t.Errorf("expected the current stroke, got %q", els[0].Stroke)
	}
	if m.status != "added 2 element(s), skipped 1" {
		t.Errorf("unexpected status %q", m.status)
	}

	m.addWKT(`{"type":"rect","x":1,"y":2,"width":3,"height":4}` + "\n" + `{"type":"circle"}`)
	els = m.ed.Elements()
	if len(els) != 3 || els[2].Type != geom.Rect || els[2].Stroke != m.ed.Stroke() {
		t.Fatalf("expected a pasted JSON rect in the current stroke, got %+v", els)
	}
	if m.status != "added 1 element(s), skipped 1" {
		t.Errorf("unexpected status %q", m.status)
	}

	m.addWKT("   ")
	if m.status != "paste: empty" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestReadDrawing(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	d, err := readDrawing(write("plan.wkt", "LINESTRING (0 0, 10 0)\nLINESTRING (0 0, 0 10)\n"))
	if err != nil || len(d.MapElements) != 2 {
		t.Errorf("wkt: expected 2 elements, got %d (%v)", len(d.MapElements), err)
	}

	d, err = readDrawing(write("plan.json", `{"width":400,"height":300,"mapElements":[{"id":3,"type":"rect","stroke":"#333333","x":1,"y":2,"width":3,"height":4}]}`))
	if err != nil || d.Width != 400 || len(d.MapElements) != 1 {
		t.Errorf("json: unexpected drawing %+v (%v)", d, err)
	}

	if _, err := readDrawing(write("plan.txt", "x")); err == nil {
		t.Error("expected an error for an unsupported file")
	}
	if _, err := readDrawing(write("bad.wkt", "POINT (1 2)")); err == nil {
		t.Error("expected an error when no line parses")
	}
}

func TestLoadPathReplacesDrawing(t *testing.T) {
	m := newTestModel(t, nil)
	m.ed.AddElement(geom.NewLine(geom.Coordinate{}, geom.Coordinate{X: 10}, ""))
	p := filepath.Join(t.TempDir(), "office.json")
	d := geom.Drawing{Width: 400, Height: 300, MapElements: []geom.MapElement{
		{ID: 7, Type: geom.Rect, Stroke: "#333333", X: 10, Y: 10, Width: 20, Height: 20},
	}}
	if err := geom.SaveDrawing(p, d); err != nil {
		t.Fatal(err)
	}
	m.loadPath(p)
	els := m.ed.Elements()
	if len(els) != 1 || els[0].ID != 7 {
		t.Fatalf("unexpected elements %+v", els)
	}
	if m.mapName != "office" || m.ed.Board().Width != 400 {
		t.Errorf("unexpected name %q or board %+v", m.mapName, m.ed.Board())
	}
	if *m.dirty != 0 {
		t.Error("expected a freshly loaded drawing to be clean")
	}
}

func TestSaveWritesJSON(t *testing.T) {
	m := newTestModel(t, nil)
	m.ed.AddElement(geom.NewLine(geom.Coordinate{}, geom.Coordinate{X: 10, Y: 10}, ""))
	if *m.dirty == 0 {
		t.Fatal("expected an edit to mark the drawing dirty")
	}
	m.save()
	p := m.cfg.SavePath("untitled.json")
	d, err := geom.LoadDrawing(p)
	if err != nil {
		t.Fatalf("load saved drawing: %v (status %q)", err, m.status)
	}
	if len(d.MapElements) != 1 || d.Width != m.cfg.Board.Width {
		t.Errorf("unexpected saved drawing %+v", d)
	}
	if *m.dirty != 0 {
		t.Error("expected save to clear the dirty marker")
	}

	m.exportCSV()
	if _, err := geom.LoadCSV(m.cfg.SavePath("untitled.csv")); err != nil {
		t.Errorf("expected a csv export: %v", err)
	}
}

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "maps.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return repo
}

func TestSaveToLibraryAndCreateSpace(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	m := newTestModel(t, repo)
	rect, _ := m.ed.AddElement(geom.MapElement{Type: geom.Rect, X: 10, Y: 10, Width: 100, Height: 50})
	m.ed.ClickElement(rect.Ref())

	m.createSpace("Desk")
	if m.status != "save the map first (ctrl+s)" {
		t.Errorf("unexpected status %q", m.status)
	}

	m.save()
	if m.mapID == 0 {
		t.Fatalf("expected a library id, status %q", m.status)
	}
	m.createSpace("Desk")
	spaces, err := repo.ListSpaces(ctx, m.mapID)
	if err != nil || len(spaces) != 1 || spaces[0].Name != "Desk" {
		t.Fatalf("unexpected spaces %+v (%v)", spaces, err)
	}
	if len(m.spaces) != 1 || spaces[0].Color != geom.SpaceColors[0] {
		t.Errorf("unexpected local spaces %+v", m.spaces)
	}

	m.save()
	maps, err := repo.ListMaps(ctx)
	if err != nil || len(maps) != 1 {
		t.Errorf("expected a second save to update, got %d maps (%v)", len(maps), err)
	}
}

func TestReloadKeepsLibraryLink(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	m := newTestModel(t, repo)
	rect, _ := m.ed.AddElement(geom.MapElement{Type: geom.Rect, X: 10, Y: 10, Width: 100, Height: 50})
	m.ed.ClickElement(rect.Ref())
	m.save()
	m.createSpace("Desk")
	id := m.mapID

	saved, err := geom.LoadDrawing(m.savePath())
	if err != nil {
		t.Fatalf("load saved drawing: %v", err)
	}
	if saved.SharingID == "" {
		t.Fatal("expected the file to carry the sharing id")
	}

	m.loadPath(m.savePath())
	if m.mapID != id || len(m.spaces) != 1 || m.spaces[0].Name != "Desk" {
		t.Fatalf("expected map %d with its space after reload, got %d %+v", id, m.mapID, m.spaces)
	}
	m.save()

	maps, err := repo.ListMaps(ctx)
	if err != nil || len(maps) != 1 {
		t.Fatalf("expected 1 map after reload and save, got %d (%v)", len(maps), err)
	}
	spaces, err := repo.ListSpaces(ctx, id)
	if err != nil || len(spaces) != 1 {
		t.Errorf("expected the space to survive, got %+v (%v)", spaces, err)
	}
}

func TestLoadUnknownSharingID(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo)
	p := filepath.Join(t.TempDir(), "elsewhere.json")
	d := geom.Drawing{Width: 400, Height: 300, SharingID: "not-in-this-library"}
	if err := geom.SaveDrawing(p, d); err != nil {
		t.Fatal(err)
	}
	m.loadPath(p)
	if m.mapID != 0 || m.sharingID != "" {
		t.Errorf("expected an unlinked drawing, got map %d share %q", m.mapID, m.sharingID)
	}

	// without a library the link is kept for the next save
	m = newTestModel(t, nil)
	m.loadPath(p)
	if m.sharingID != "not-in-this-library" {
		t.Errorf("expected the sharing id kept, got %q", m.sharingID)
	}
	m.save()
	if got, _ := geom.LoadDrawing(p); got.SharingID != "not-in-this-library" {
		t.Errorf("expected the save to keep the sharing id, got %q", got.SharingID)
	}
}

func TestOpenLibraryMap(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	mp, err := repo.CreateMap(ctx, "Lobby", geom.Drawing{Width: 500, Height: 400, MapElements: []geom.MapElement{
		{ID: 1, Type: geom.Rect, Stroke: "#333333", X: 10, Y: 10, Width: 40, Height: 40},
	}})
	if err != nil {
		t.Fatalf("create map: %v", err)
	}
	sp, _ := space.New("Sofa", "#5CAC1E", geom.MapElement{Type: geom.Rect, X: 10, Y: 10, Width: 40, Height: 40})
	if _, err := repo.AddSpace(ctx, mp.ID, sp); err != nil {
		t.Fatalf("add space: %v", err)
	}

	m := newTestModel(t, repo)
	var item fileItem
	for _, it := range m.l.Items() {
		if fi := it.(fileItem); fi.mapID == mp.ID {
			item = fi
		}
	}
	if item.mapID == 0 {
		t.Fatalf("expected the map in the sidebar, got %+v", m.l.Items())
	}
	m.openItem(item)
	if m.mapID != mp.ID || m.mapName != "Lobby" || len(m.ed.Elements()) != 1 || len(m.spaces) != 1 {
		t.Fatalf("unexpected model after open: map %d %q elements=%d spaces=%d (%s)",
			m.mapID, m.mapName, len(m.ed.Elements()), len(m.spaces), m.status)
	}
	if m.ed.Board().Width != 500 {
		t.Errorf("expected the map's board, got %+v", m.ed.Board())
	}

	m.save()
	if maps, _ := repo.ListMaps(ctx); len(maps) != 1 {
		t.Errorf("expected saving an opened map to update it, got %d maps", len(maps))
	}
	if _, err := os.Stat(m.cfg.SavePath("Lobby.json")); err != nil {
		t.Errorf("expected Lobby.json in the save directory: %v", err)
	}
}

func TestCreateSpaceWithPreset(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	settings := space.DefaultSettings()
	settings.AvailableStartTime, settings.AvailableEndTime = "09:00:00", "18:00:00"
	settings.EnabledWeekdays = space.ParseEnabledDayOfWeek("monday,friday")
	if _, err := repo.CreatePreset(ctx, space.Preset{Name: "Meeting", Settings: settings}); err != nil {
		t.Fatalf("create preset: %v", err)
	}

	m := newTestModel(t, repo)
	rect, _ := m.ed.AddElement(geom.MapElement{Type: geom.Rect, X: 10, Y: 10, Width: 100, Height: 50})
	m.ed.ClickElement(rect.Ref())
	m.save()

	m.createSpace("Room A @ lounge")
	if m.status != `space: no preset "lounge"` {
		t.Errorf("unexpected status %q", m.status)
	}
	m.createSpace("Room A @ meeting")
	spaces, err := repo.ListSpaces(ctx, m.mapID)
	if err != nil || len(spaces) != 1 {
		t.Fatalf("expected 1 space, got %+v (%v)", spaces, err)
	}
	if spaces[0].Name != "Room A" || spaces[0].Settings != settings {
		t.Errorf("expected the preset settings, got %+v", spaces[0])
	}
}

func TestCreateSpaceOffBoard(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo)
	b := m.ed.Board()
	rect, _ := m.ed.AddElement(geom.MapElement{Type: geom.Rect, X: b.Width - 10, Y: 10, Width: 50, Height: 50})
	m.ed.ClickElement(rect.Ref())
	m.save()
	m.createSpace("Balcony")
	if m.status != "space: the rect must lie on the board" || len(m.spaces) != 0 {
		t.Errorf("expected an off-board rect to be refused, got %q", m.status)
	}
}

func TestColorRecolorsSelection(t *testing.T) {
	m := newTestModel(t, nil)
	line, _ := m.ed.AddElement(geom.NewLine(geom.Coordinate{}, geom.Coordinate{X: 10}, ""))
	m.ed.ClickElement(line.Ref())
	m = press(m, "c")
	got, _ := m.ed.Element(line.ID)
	if got.Stroke != m.ed.Stroke() || got.Stroke == geom.DefaultStroke {
		t.Errorf("expected the selection in the new stroke %s, got %s", m.ed.Stroke(), got.Stroke)
	}
}

func TestExportThumbnail(t *testing.T) {
	m := newTestModel(t, nil)
	m.ed.AddElement(geom.MapElement{Type: geom.Rect, X: 10, Y: 10, Width: 100, Height: 50})
	m = press(m, "t")
	f, err := os.Open(m.cfg.SavePath("untitled.png"))
	if err != nil {
		t.Fatalf("expected a png export: %v (status %q)", err, m.status)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != m.cfg.Thumbnail.Width {
		t.Errorf("expected width %d, got %d", m.cfg.Thumbnail.Width, img.Bounds().Dx())
	}
}

func TestStartMode(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Mode = "rect"
	m := New(Options{Config: cfg})
	if m.ed.Mode() != editor.ModeRect {
		t.Errorf("expected rect mode at start, got %v", m.ed.Mode())
	}
}

func TestCopyToClipboard(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t, nil)
	line, _ := m.ed.AddElement(geom.NewLine(geom.Coordinate{}, geom.Coordinate{X: 10, Y: 20}, ""))
	m.copyToClipboard()
	if !strings.Contains(copied, `"mapElements"`) {
		t.Errorf("expected drawing JSON, got %q", copied)
	}

	m.ed.ClickElement(line.Ref())
	m.copyToClipboard()
	if copied != "LINESTRING (0 0, 10 20)" {
		t.Errorf("expected WKT, got %q", copied)
	}
}

func TestCopyElementJSON(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t, nil)
	m = press(m, "Y")
	if copied != "" || m.status != "select an element to copy" {
		t.Fatalf("expected nothing copied without a selection, got %q (%s)", copied, m.status)
	}

	line, _ := m.ed.AddElement(geom.NewLine(geom.Coordinate{X: 5}, geom.Coordinate{X: 15, Y: 25}, "#0060FF"))
	m.ed.ClickElement(line.Ref())
	m = press(m, "Y")
	if !strings.HasPrefix(copied, "{") || !strings.Contains(copied, `"#0060FF"`) {
		t.Fatalf("expected element JSON, got %q", copied)
	}

	// the copied text pastes back as a new element
	n := len(m.ed.Elements())
	m.addWKT(copied)
	if got := len(m.ed.Elements()); got != n+1 {
		t.Fatalf("expected the copy to paste back, got %d elements", got)
	}
	pasted := m.ed.Elements()[n]
	if len(pasted.Points) != 2 || pasted.Points[1] != (geom.Coordinate{X: 15, Y: 25}) {
		t.Errorf("unexpected pasted points %v", pasted.Points)
	}
}

func TestElementTable(t *testing.T) {
	m := newTestModel(t, nil)
	m.ed.AddElement(geom.NewLine(geom.Coordinate{}, geom.Coordinate{X: 10}, ""))
	rect, _ := m.ed.AddElement(geom.MapElement{Type: geom.Rect, Width: 5, Height: 5})
	m = press(m, "a")
	if !m.showTable || len(m.tbl.Rows()) != 2 {
		t.Fatalf("expected a table with 2 rows, got %d", len(m.tbl.Rows()))
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if id, ok := m.ed.SelectedID(); !ok || id != rect.ID {
		t.Errorf("expected rect %d selected, got %d %v", rect.ID, id, ok)
	}
	if m.showTable {
		t.Error("expected the table to close after choosing a row")
	}
}

func TestRenderCanvas(t *testing.T) {
	m := newTestModel(t, nil)
	m.ed.AddElement(geom.MapElement{Type: geom.Rect, Stroke: "#EB3933", X: 100, Y: 100, Width: 200, Height: 100})
	out := m.renderCanvas(40, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	braille := false
	for _, r := range out {
		if r >= 0x2801 && r <= 0x28FF {
			braille = true
			break
		}
	}
	if !braille {
		t.Error("expected braille dots in the canvas")
	}
	if v := m.View(); !strings.Contains(v, "Rect") || !strings.Contains(v, "floormap") {
		t.Error("expected the toolbar in the view")
	}
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.drawLine(0, 0, 3, 0, "#FFFFFF")
	rows := b.cells()
	if rows[0][0].r != rune(0x2800+0x01+0x08) || rows[0][1].r != rune(0x2800+0x01+0x08) {
		t.Errorf("unexpected cells %q %q", rows[0][0].r, rows[0][1].r)
	}
	b.setPixel(-1, 0, "")
	b.setPixel(4, 0, "")
	if got := joinCells([][]cell{{{r: 'a'}, {r: 'b'}}}); got[0] != "ab" {
		t.Errorf("expected plain runs unstyled, got %q", got[0])
	}
}
