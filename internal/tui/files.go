package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"floormap/internal/geom"
	"floormap/internal/repository"
)

// fileItem is a drawing file, or a library map when mapID is set.
type fileItem struct {
	title, desc string
	path        string
	mapID       int64
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// drawingExts are the file types the sidebar lists.
var drawingExts = map[string]bool{".json": true, ".wkt": true, ".csv": true}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if drawingExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	items = append(items, m.libraryItems()...)
	m.l.SetItems(items)
	if len(items) == 0 && m.showSidebar {
		m.status = "no drawings in current directory"
	}
}

// libraryItems lists the maps stored in the library, newest first.
func (m *Model) libraryItems() []list.Item {
	if m.repo == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	maps, err := m.repo.ListMaps(ctx)
	if err != nil {
		log.Printf("[TUI] list maps: %v", err)
		return nil
	}
	items := make([]list.Item, 0, len(maps))
	for _, mp := range maps {
		items = append(items, fileItem{title: "◆ " + mp.Name, desc: fmt.Sprintf("map #%d", mp.ID), mapID: mp.ID})
	}
	return items
}

func (m *Model) openItem(it fileItem) {
	if it.mapID != 0 {
		m.openMap(it.mapID)
		return
	}
	m.loadPath(it.path)
}

// readDrawing loads any supported drawing file.
func readDrawing(p string) (geom.Drawing, error) {
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".json":
		return geom.LoadDrawing(p)
	case ".csv":
		elements, err := geom.LoadCSV(p)
		if err != nil {
			return geom.Drawing{}, err
		}
		return geom.Drawing{MapElements: elements}, nil
	case ".wkt":
		data, err := os.ReadFile(p)
		if err != nil {
			return geom.Drawing{}, err
		}
		elements, errs := parseWKTLines(string(data), "")
		if len(elements) == 0 && len(errs) > 0 {
			return geom.Drawing{}, errs[0]
		}
		return geom.Drawing{MapElements: elements}, nil
	default:
		return geom.Drawing{}, fmt.Errorf("unsupported file: %s", ext)
	}
}

// parseWKTLines parses one geometry per non-empty line. Lines opening
// with "{" are single elements in the drawing JSON format.
func parseWKTLines(text, stroke string) ([]geom.MapElement, []error) {
	var (
		out  []geom.MapElement
		errs []error
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var (
			e   geom.MapElement
			err error
		)
		if strings.HasPrefix(line, "{") {
			if e, err = geom.UnmarshalElement([]byte(line)); err == nil && e.Stroke == "" {
				e.Stroke = stroke
			}
		} else {
			e, err = geom.ParseWKT(line, stroke)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, e)
	}
	return out, errs
}

// loadPath replaces the current drawing with a file's contents. A file
// saved from the library is reattached to its map and spaces.
func (m *Model) loadPath(p string) {
	d, err := readDrawing(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		log.Printf("[TUI] load %s: %v", p, err)
		return
	}
	m.selPath = p
	m.ed.Load(d)
	m.mapName = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	m.linkLibrary(d.SharingID)
	m.afterLoad()
	m.status = fmt.Sprintf("loaded: %s  elements=%d", filepath.Base(p), len(m.ed.Elements()))
	if m.mapID != 0 {
		m.status += fmt.Sprintf("  map #%d spaces=%d", m.mapID, len(m.spaces))
	}
}

// linkLibrary finds the map a drawing was saved as and loads its spaces.
// Without a library the sharing id is kept so the next save preserves it.
func (m *Model) linkLibrary(sharingID string) {
	m.mapID, m.sharingID, m.spaces = 0, sharingID, nil
	if m.repo == nil || sharingID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	mp, err := m.repo.GetMapBySharingID(ctx, sharingID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("[TUI] find map %s: %v", sharingID, err)
		}
		// unknown here; the next save stores a fresh map
		m.sharingID = ""
		return
	}
	m.mapID = mp.ID
	if m.spaces, err = m.repo.ListSpaces(ctx, mp.ID); err != nil {
		log.Printf("[TUI] list spaces of map %d: %v", mp.ID, err)
	}
}

// openMap replaces the current drawing with a library map. Saving writes
// it to <name>.json in the save directory.
func (m *Model) openMap(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	mp, err := m.repo.GetMap(ctx, id)
	if err != nil {
		m.status = "open map error: " + err.Error()
		log.Printf("[TUI] open map %d: %v", id, err)
		return
	}
	spaces, err := m.repo.ListSpaces(ctx, id)
	if err != nil {
		m.status = "open map error: " + err.Error()
		log.Printf("[TUI] list spaces of map %d: %v", id, err)
		return
	}
	m.ed.Load(mp.Drawing)
	m.selPath = ""
	m.mapID, m.sharingID, m.mapName, m.spaces = mp.ID, mp.SharingID, mp.Name, spaces
	m.afterLoad()
	m.status = fmt.Sprintf("opened map #%d %s  elements=%d spaces=%d", mp.ID, mp.Name, len(m.ed.Elements()), len(spaces))
}

func (m *Model) afterLoad() {
	m.hoverRef = nil
	m.leftDown = false
	*m.dirty = 0
	lo := m.layout()
	m.fitBoard(lo.mapW, lo.mapH)
	if m.showTable {
		m.refreshElementTable()
	}
}

// addWKT appends pasted geometries to the drawing in the current stroke.
func (m *Model) addWKT(text string) {
	if strings.TrimSpace(text) == "" {
		m.status = "paste: empty"
		return
	}
	elements, errs := parseWKTLines(text, m.ed.Stroke())
	added := 0
	for _, e := range elements {
		if _, ok := m.ed.AddElement(e); ok {
			added++
		}
	}
	switch {
	case added == 0 && len(errs) > 0:
		m.status = "wkt error: " + errs[0].Error()
	case len(errs) > 0:
		m.status = fmt.Sprintf("added %d element(s), skipped %d", added, len(errs))
	default:
		m.status = fmt.Sprintf("added %d element(s)", added)
	}
}
