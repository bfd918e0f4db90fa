package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"snippetkit/internal/tui/widgets/helpoverlay"
)

type keyMap struct {
	Next, Prev key.Binding
	Insert     key.Binding
	Command    key.Binding
	Title      key.Binding

	SavePNG   key.Binding
	SaveSVG   key.Binding
	CopyImage key.Binding
	CopyLink  key.Binding
	CopyText  key.Binding

	Dark       key.Binding
	Background key.Binding
	Controls   key.Binding
	Changes    key.Binding
	DiffView   key.Binding

	Help key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous control")),
	Insert:  key.NewBinding(key.WithKeys("i", "e"), key.WithHelp("i", "edit code")),
	Command: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
	Title:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "edit title")),

	SavePNG:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "save PNG")),
	SaveSVG:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save SVG")),
	CopyImage: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy image")),
	CopyLink:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "copy PNG data URL")),
	CopyText:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy code")),

	Dark:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "dark/light")),
	Background: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
	Controls:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "window buttons")),
	Changes:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "changes")),
	DiffView:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "unified/side-by-side")),

	Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp is the one-line hint under the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.SavePNG, k.SaveSVG, k.CopyImage, k.CopyText, k.Next, k.Help, k.Quit}
}

// FullHelp groups every binding.
func (k keyMap) FullHelp() [][]key.Binding {
	var out [][]key.Binding
	for _, s := range k.sections() {
		out = append(out, s.Keys)
	}
	return out
}

func (k keyMap) sections() []helpoverlay.Section {
	pick := key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "open list / select / toggle"))
	move := key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "open list, move (wraps)"))
	edges := key.NewBinding(key.WithKeys("home", "end"), key.WithHelp("home/end", "first/last option"))
	slide := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→ pgup/pgdn", "adjust slider"))
	return []helpoverlay.Section{
		{Title: "Navigation", Keys: []key.Binding{k.Next, k.Prev, pick, move, edges, slide}},
		{Title: "Editor", Keys: []key.Binding{k.Insert, k.Command, k.Title}},
		{Title: "Export", Keys: []key.Binding{k.SavePNG, k.SaveSVG, k.CopyImage, k.CopyLink, k.CopyText}},
		{Title: "View", Keys: []key.Binding{k.Dark, k.Background, k.Controls, k.Changes, k.DiffView}},
		{Title: "General", Keys: []key.Binding{k.Help, k.Quit}},
	}
}
