package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"floormap/internal/geom"
	"floormap/internal/space"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "maps.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := New(db)
	if err := r.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return r
}

func sampleDrawing() geom.Drawing {
	return geom.Drawing{
		Width:  800,
		Height: 600,
		MapElements: []geom.MapElement{
			{ID: 1, Type: geom.Polyline, Stroke: "#333333", Points: []geom.Coordinate{{X: 0, Y: 0}, {X: 100, Y: 0}}},
			{ID: 2, Type: geom.Rect, Stroke: "#EB3933", X: 10, Y: 10, Width: 50, Height: 40},
		},
	}
}

func TestCreateAndGetMap(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	m, err := r.CreateMap(ctx, "Floor 1", sampleDrawing())
	if err != nil {
		t.Fatalf("CreateMap failed: %v", err)
	}
	if m.ID == 0 || m.SharingID == "" {
		t.Fatalf("expected id and sharing id, got %+v", m)
	}

	got, err := r.GetMap(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMap failed: %v", err)
	}
	if got.Name != "Floor 1" || len(got.Drawing.MapElements) != 2 || got.Drawing.Width != 800 {
		t.Errorf("unexpected map %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to round trip")
	}
	if got.Drawing.SharingID != m.SharingID || m.Drawing.SharingID != m.SharingID {
		t.Errorf("expected the drawing linked to %s, got %q", m.SharingID, got.Drawing.SharingID)
	}

	shared, err := r.GetMapBySharingID(ctx, m.SharingID)
	if err != nil || shared.ID != m.ID {
		t.Errorf("expected map %d by sharing id, got %+v (%v)", m.ID, shared, err)
	}
}

func TestGetMapNotFound(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	if _, err := r.GetMap(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := r.GetMapBySharingID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := r.UpdateMap(ctx, &Map{ID: 42}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
	if err := r.DeleteMap(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestListAndUpdateMaps(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	a, _ := r.CreateMap(ctx, "A", sampleDrawing())
	clock = clock.Add(time.Minute)
	b, _ := r.CreateMap(ctx, "B", geom.Drawing{Width: 100, Height: 100})

	maps, err := r.ListMaps(ctx)
	if err != nil {
		t.Fatalf("ListMaps failed: %v", err)
	}
	if len(maps) != 2 || maps[0].ID != b.ID {
		t.Fatalf("expected B first, got %+v", maps)
	}
	if len(maps[0].Drawing.MapElements) != 0 {
		t.Error("empty drawing should load without elements")
	}

	clock = clock.Add(time.Minute)
	a.Name = "A renamed"
	a.Drawing.MapElements = a.Drawing.MapElements[:1]
	if err := r.UpdateMap(ctx, a); err != nil {
		t.Fatalf("UpdateMap failed: %v", err)
	}
	maps, _ = r.ListMaps(ctx)
	if maps[0].ID != a.ID || maps[0].Name != "A renamed" || len(maps[0].Drawing.MapElements) != 1 {
		t.Errorf("expected updated A first, got %+v", maps[0])
	}
}

func TestSpaces(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	m, _ := r.CreateMap(ctx, "Office", sampleDrawing())

	sp, err := space.New("Meeting room", "#5CAC1E", geom.MapElement{Type: geom.Rect, X: 10, Y: 10, Width: 50, Height: 40})
	if err != nil {
		t.Fatalf("space.New failed: %v", err)
	}
	sp.Settings.EnabledWeekdays = space.ParseEnabledDayOfWeek("monday,friday")
	saved, err := r.AddSpace(ctx, m.ID, sp)
	if err != nil {
		t.Fatalf("AddSpace failed: %v", err)
	}
	if saved.ID == 0 || saved.MapID != m.ID {
		t.Errorf("unexpected saved space %+v", saved)
	}

	if _, err := r.AddSpace(ctx, 999, sp); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown map, got %v", err)
	}
	bad := sp
	bad.Settings.ReservationTimeUnit = 7
	if _, err := r.AddSpace(ctx, m.ID, bad); !errors.Is(err, space.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}

	spaces, err := r.ListSpaces(ctx, m.ID)
	if err != nil {
		t.Fatalf("ListSpaces failed: %v", err)
	}
	if len(spaces) != 1 {
		t.Fatalf("expected 1 space, got %d", len(spaces))
	}
	got := spaces[0]
	if got.Name != "Meeting room" || got.Area.Width != 50 || got.Settings.EnabledDayOfWeek() != "monday,friday" {
		t.Errorf("unexpected space %+v", got)
	}

	if err := r.DeleteMap(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMap failed: %v", err)
	}
	spaces, _ = r.ListSpaces(ctx, m.ID)
	if len(spaces) != 0 {
		t.Errorf("spaces should be deleted with their map, got %d", len(spaces))
	}
}

func TestPresets(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	s := space.DefaultSettings()
	s.AvailableStartTime, s.AvailableEndTime = "09:00:00", "18:00:00"
	s.EnabledWeekdays = space.ParseEnabledDayOfWeek("monday,tuesday")
	p, err := space.NewPreset("weekday", s)
	if err != nil {
		t.Fatalf("NewPreset failed: %v", err)
	}
	saved, err := r.CreatePreset(ctx, p)
	if err != nil {
		t.Fatalf("CreatePreset failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected an id")
	}
	if _, err := r.CreatePreset(ctx, space.Preset{Name: "", Settings: s}); !errors.Is(err, space.ErrInvalidPreset) {
		t.Errorf("expected ErrInvalidPreset, got %v", err)
	}
	other, _ := r.CreatePreset(ctx, space.Preset{Name: "always", Settings: space.DefaultSettings()})

	got, err := r.GetPreset(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetPreset failed: %v", err)
	}
	if got.Name != "weekday" || got.Settings != s {
		t.Errorf("unexpected preset %+v", got)
	}

	list, err := r.ListPresets(ctx)
	if err != nil || len(list) != 2 || list[0].ID != saved.ID || list[1].ID != other.ID {
		t.Fatalf("unexpected presets %+v (%v)", list, err)
	}

	if err := r.DeletePreset(ctx, saved.ID); err != nil {
		t.Fatalf("DeletePreset failed: %v", err)
	}
	if _, err := r.GetPreset(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := r.DeletePreset(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}
