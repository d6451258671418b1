package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"floormap/internal/geom"
	"floormap/internal/repository"
	"floormap/internal/space"
	"floormap/internal/thumbnail"
)

const storeTimeout = 5 * time.Second

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// savePath is the JSON file the drawing is saved to: the opened file when
// it was JSON, otherwise <name>.json in the save directory.
func (m Model) savePath() string {
	if strings.EqualFold(filepath.Ext(m.selPath), ".json") {
		return m.selPath
	}
	return m.cfg.SavePath(m.mapName + ".json")
}

// save stores the drawing in the library, when there is one, and writes
// it to disk carrying the map's sharing id.
func (m *Model) save() {
	d := m.ed.Snapshot()
	var (
		mp     *repository.Map
		libErr error
	)
	if m.repo != nil {
		if mp, libErr = m.storeMap(d); libErr != nil {
			log.Printf("[TUI] store map: %v", libErr)
		}
	}
	d.SharingID = m.sharingID
	path := m.savePath()
	if err := geom.SaveDrawing(path, d); err != nil {
		m.status = "save error: " + err.Error()
		log.Printf("[TUI] save %s: %v", path, err)
		return
	}
	m.selPath = path
	status := "saved " + filepath.Base(path)
	if libErr != nil {
		m.status = status + "  library error: " + libErr.Error()
		return
	}
	if mp != nil {
		status += fmt.Sprintf("  map #%d share %s", mp.ID, mp.SharingID)
	}
	*m.dirty = 0
	m.status = status
	m.refreshDir()
}

func (m *Model) storeMap(d geom.Drawing) (*repository.Map, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if m.mapID != 0 {
		mp, err := m.repo.GetMap(ctx, m.mapID)
		if err == nil {
			mp.Name = m.mapName
			mp.Drawing = d
			if err := m.repo.UpdateMap(ctx, mp); err != nil {
				return nil, err
			}
			m.sharingID = mp.SharingID
			return mp, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// the row was deleted behind us; store a fresh copy
		m.spaces = nil
	}
	mp, err := m.repo.CreateMap(ctx, m.mapName, d)
	if err != nil {
		return nil, err
	}
	m.mapID = mp.ID
	m.sharingID = mp.SharingID
	return mp, nil
}

// exportThumbnail renders the drawing and its spaces to a PNG next to
// the JSON save file.
func (m *Model) exportThumbnail() {
	path := strings.TrimSuffix(m.savePath(), filepath.Ext(m.savePath())) + ".png"
	if err := thumbnail.SavePNG(path, m.ed.Snapshot(), m.spaces, m.cfg.Thumbnail.Width); err != nil {
		m.status = "thumbnail error: " + err.Error()
		log.Printf("[TUI] thumbnail %s: %v", path, err)
		return
	}
	m.status = "exported " + filepath.Base(path)
}

// exportCSV writes the elements next to the JSON save file.
func (m *Model) exportCSV() {
	path := strings.TrimSuffix(m.savePath(), filepath.Ext(m.savePath())) + ".csv"
	f, err := os.Create(path)
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	werr := geom.WriteCSV(f, m.ed.Elements())
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		m.status = "export error: " + werr.Error()
		return
	}
	m.status = "exported " + filepath.Base(path)
	m.refreshDir()
}

// copyToClipboard copies the selected element as WKT, or the whole
// drawing as JSON when nothing is selected.
func (m *Model) copyToClipboard() {
	var (
		text string
		what string
	)
	if e, ok := m.selectedElement(); ok {
		wkt, err := geom.FormatWKT(e)
		if err != nil {
			m.status = "copy error: " + err.Error()
			return
		}
		text, what = wkt, e.Ref().String()+" as WKT"
	} else {
		data, err := geom.EncodeDrawing(m.ed.Snapshot())
		if err != nil {
			m.status = "copy error: " + err.Error()
			return
		}
		text, what = string(data), "drawing JSON"
	}
	if err := writeClipboard(text); err != nil {
		m.status = "clipboard error: " + err.Error()
		return
	}
	m.status = "copied " + what
}

// copyElementJSON copies the selected element in the drawing format, the
// same form the paste box accepts.
func (m *Model) copyElementJSON() {
	e, ok := m.selectedElement()
	if !ok {
		m.status = "select an element to copy"
		return
	}
	data, err := geom.MarshalElement(e)
	if err != nil {
		m.status = "copy error: " + err.Error()
		return
	}
	if err := writeClipboard(string(data)); err != nil {
		m.status = "clipboard error: " + err.Error()
		return
	}
	m.status = "copied " + e.Ref().String() + " as JSON"
}

func (m Model) selectedElement() (geom.MapElement, bool) {
	id, ok := m.ed.SelectedID()
	if !ok {
		return geom.MapElement{}, false
	}
	return m.ed.Element(id)
}

func (m Model) selectedRect() (geom.MapElement, bool) {
	e, ok := m.selectedElement()
	if !ok || e.Type != geom.Rect {
		return geom.MapElement{}, false
	}
	return e, true
}

// createSpace turns the selected rect into a named space of the saved
// map. "name @ preset" starts the space from a stored preset.
func (m *Model) createSpace(input string) {
	name, presetName, withPreset := strings.Cut(input, "@")
	name = strings.TrimSpace(name)
	if name == "" {
		m.status = "space: empty name"
		return
	}
	rect, ok := m.selectedRect()
	if !ok {
		m.status = "select a rect to turn into a space"
		return
	}
	board := m.ed.Board()
	onBoard := geom.BBox{MaxX: board.Width, MaxY: board.Height}
	if !onBoard.Contains(geom.Coordinate{X: rect.X, Y: rect.Y}) ||
		!onBoard.Contains(geom.Coordinate{X: rect.X + rect.Width, Y: rect.Y + rect.Height}) {
		m.status = "space: the rect must lie on the board"
		return
	}
	if m.repo == nil {
		m.status = "spaces need a map library"
		return
	}
	if m.mapID == 0 {
		m.status = "save the map first (ctrl+s)"
		return
	}
	color := geom.SpaceColors[len(m.spaces)%len(geom.SpaceColors)]
	sp, err := space.New(name, color, rect)
	if err != nil {
		m.status = "space error: " + err.Error()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if withPreset {
		presets, err := m.repo.ListPresets(ctx)
		if err != nil {
			m.status = "preset error: " + err.Error()
			log.Printf("[TUI] list presets: %v", err)
			return
		}
		p, ok := space.FindPreset(presets, presetName)
		if !ok {
			m.status = fmt.Sprintf("space: no preset %q", strings.TrimSpace(presetName))
			return
		}
		sp = p.Apply(sp)
	}
	sp, err = m.repo.AddSpace(ctx, m.mapID, sp)
	if err != nil {
		m.status = "space error: " + err.Error()
		log.Printf("[TUI] add space: %v", err)
		return
	}
	if body, err := space.RequestBody(sp); err == nil {
		log.Printf("[TUI] space %d request %s", sp.ID, body)
	}
	m.spaces = append(m.spaces, sp)
	m.status = fmt.Sprintf("space %q created", sp.Name)
}
