// Package tui hosts the floor-plan editor in the terminal: a toolbar, a
// braille canvas driven by the mouse, a file sidebar and an element table.
package tui

import (
	"os"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"floormap/internal/config"
	"floormap/internal/editor"
	"floormap/internal/geom"
	"floormap/internal/repository"
	"floormap/internal/space"
)

// promptKind is what the text box is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptWKT
	promptSpace
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	cfg  config.Config
	repo *repository.Repository

	ed *editor.Editor
	// fitted is set once the board has been scaled into the canvas.
	fitted bool
	// dirty counts element changes since the last save.
	dirty *int

	// library row of the current drawing, zero until first saved
	mapID     int64
	sharingID string
	mapName   string
	spaces    []space.Space

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// last rendered canvas size in cells
	mapW int
	mapH int

	prompt promptKind
	ta     textarea.Model

	// pointer state over the canvas
	leftDown bool
	hovering bool
	hoverRef *geom.ElementRef

	showTable bool
	tbl       table.Model

	keys keyMap
	help help.Model

	// prefix of this model's toolbar zone ids
	zoneID string
}

type Options struct {
	Config config.Config
	// Repo is optional; without it ctrl+s only writes the JSON file.
	Repo *repository.Repository
}

func New(opts Options) Model {
	zone.NewGlobal()
	cfg := opts.Config
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "floormap ready",
		cfg:         cfg,
		repo:        opts.Repo,
		ed:          editor.New(cfg.Board.Width, cfg.Board.Height),
		dirty:       new(int),
		mapName:     "untitled",
		keys:        defaultKeyMap(),
		help:        help.New(),
		zoneID:      zone.NewPrefix(),
	}
	m.ed.SetStroke(cfg.Editor.Stroke)
	if mode, ok := editor.ParseMode(cfg.Editor.Mode); ok {
		m.ed.SelectMode(mode)
	}
	dirty := m.dirty
	m.ed.Subscribe(func([]geom.MapElement) { *dirty++ })

	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Drawings"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a drawing file at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
