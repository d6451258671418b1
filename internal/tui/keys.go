package tui

import (
	key "github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Select    key.Binding
	Move      key.Binding
	Line      key.Binding
	Rect      key.Binding
	Eraser    key.Binding
	Color     key.Binding
	Pan       key.Binding
	Delete    key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Fit       key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Sidebar   key.Binding
	Open      key.Binding
	Paste     key.Binding
	Space     key.Binding
	Table     key.Binding
	Save      key.Binding
	Export    key.Binding
	Thumbnail key.Binding
	Copy      key.Binding
	CopyJSON  key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select:    key.NewBinding(key.WithKeys("1", "v"), key.WithHelp("1/v", "select")),
		Move:      key.NewBinding(key.WithKeys("2", "m"), key.WithHelp("2/m", "move")),
		Line:      key.NewBinding(key.WithKeys("3", "l"), key.WithHelp("3/l", "line")),
		Rect:      key.NewBinding(key.WithKeys("4", "r"), key.WithHelp("4/r", "rect")),
		Eraser:    key.NewBinding(key.WithKeys("5", "e"), key.WithHelp("5/e", "eraser")),
		Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
		Pan:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "hold pan")),
		Delete:    key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
		Fit:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "pan")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Sidebar:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste wkt")),
		Space:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new space")),
		Table:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "elements")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Export:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "csv")),
		Thumbnail: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "png")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		CopyJSON:  key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy json")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Move, k.Line, k.Rect, k.Eraser, k.Color, k.Pan, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.Move, k.Line, k.Rect, k.Eraser, k.Color},
		{k.Pan, k.Delete, k.ZoomIn, k.Fit, k.Up},
		{k.Sidebar, k.Open, k.Paste, k.Space, k.Table},
		{k.Save, k.Export, k.Thumbnail, k.Copy, k.CopyJSON, k.Cancel, k.Help, k.Quit},
	}
}
