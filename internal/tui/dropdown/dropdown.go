// Package dropdown is a keyboard and mouse driven select widget whose option
// panel positions itself against the viewport edges and escapes clipping
// containers by floating in the root layer while open.
package dropdown

import (
	"snippetkit/internal/tui/layout"
)

// DefaultMaxRows bounds the visible option rows; longer lists scroll.
const DefaultMaxRows = 8

// Option is one selectable entry.
type Option struct {
	Value    string
	Label    string
	Icon     string
	Selected bool
}

// Change is emitted whenever an option gets selected.
type Change struct {
	Widget string
	Value  string
	Label  string
}

// Placement tells where the option panel lives while open.
type Placement int

const (
	// Inline keeps the panel in its original container.
	Inline Placement = iota
	// Detached moves the panel into the unclipped root layer.
	Detached
)

func (p Placement) String() string {
	if p == Detached {
		return "detached"
	}
	return "inline"
}

// Direction is the side of the trigger the panel opens on.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// origin remembers where a detached panel came from.
type origin struct {
	parent *layout.Node
	index  int
}

// Config describes a widget at construction time.
type Config struct {
	Name string
	// Parent receives the widget's root node. May be nil for tests.
	Parent   *layout.Node
	Options  []Option
	MaxRows  int
	OnChange func(Change)
	// OnToggle observes open/close transitions.
	OnToggle func(name string, open bool)
}

// Dropdown is one select widget. Its open/closed state, placement and focus
// form a small state machine: Closed, Open-inline and Open-detached.
type Dropdown struct {
	name     string
	coord    *Coordinator
	onChange func(Change)
	onToggle func(string, bool)

	root    *layout.Node
	trigger *layout.Node
	panel   *layout.Node

	options []Option
	maxRows int

	open      bool
	placement Placement
	from      origin
	direction Direction
	focused   int
	selected  int
	offset    int

	label string
	icon  string
}

// New builds a widget registered with coord. The option marked Selected (or
// the first one) is selected immediately so the initial value is announced.
func New(coord *Coordinator, cfg Config) *Dropdown {
	d := &Dropdown{
		name:     cfg.Name,
		coord:    coord,
		onChange: cfg.OnChange,
		onToggle: cfg.OnToggle,
		maxRows:  cfg.MaxRows,
		selected: -1,
	}
	if d.maxRows <= 0 {
		d.maxRows = DefaultMaxRows
	}
	d.root = layout.NewNode(cfg.Name, layout.Style{})
	d.trigger = d.root.Append(layout.NewNode(cfg.Name+"-trigger", layout.Style{}))
	d.panel = d.root.Append(layout.NewNode(cfg.Name+"-options", layout.Style{OverflowY: layout.Auto}))
	if cfg.Parent != nil {
		cfg.Parent.Append(d.root)
	}
	coord.register(d)
	d.SetOptions(cfg.Options)
	return d
}

// SetOptions replaces the option list and re-announces the selection.
func (d *Dropdown) SetOptions(opts []Option) {
	if d.open {
		d.Close()
	}
	d.options = append([]Option(nil), opts...)
	d.focused = 0
	d.offset = 0
	d.selected = -1
	for i, o := range d.options {
		if o.Selected {
			d.focused = i
			break
		}
	}
	if len(d.options) > 0 {
		d.Select(d.focused)
	}
}

func (d *Dropdown) Name() string { return d.name }
func (d *Dropdown) IsOpen() bool { return d.open }
func (d *Dropdown) Placement() Placement { return d.placement }
func (d *Dropdown) Direction() Direction { return d.direction }
func (d *Dropdown) Focused() int { return d.focused }
func (d *Dropdown) Selected() int { return d.selected }
func (d *Dropdown) Offset() int { return d.offset }
func (d *Dropdown) Root() *layout.Node { return d.root }
func (d *Dropdown) Panel() *layout.Node { return d.panel }
func (d *Dropdown) Display() (label, icon string) { return d.label, d.icon }

// Options returns a copy of the option list.
func (d *Dropdown) Options() []Option {
	return append([]Option(nil), d.options...)
}

// SelectedOption returns the selected option, if any.
func (d *Dropdown) SelectedOption() (Option, bool) {
	if d.selected < 0 || d.selected >= len(d.options) {
		return Option{}, false
	}
	return d.options[d.selected], true
}

// SetBounds records the trigger's on-screen box from the latest layout pass.
func (d *Dropdown) SetBounds(r layout.Rect) {
	d.root.Box = r
	d.trigger.Box = r
	if d.open {
		d.Reposition()
	}
}

// Shift moves the trigger box by dx, dy after an ancestor scrolled. The
// panel is left alone until the coordinator's Scrolled repositions it.
func (d *Dropdown) Shift(dx, dy int) {
	d.root.Box.X += dx
	d.root.Box.Y += dy
	d.trigger.Box = d.root.Box
}

// PanelHeight is the measured height of the option panel, border included.
func (d *Dropdown) PanelHeight() int {
	return d.visibleRows() + 2
}

func (d *Dropdown) visibleRows() int {
	return min(len(d.options), d.maxRows)
}

// Open shows the option panel. Any other open widget is closed first.
func (d *Dropdown) Open() {
	if len(d.options) == 0 {
		return
	}
	wasOpen := d.open
	d.coord.claim(d)

	needsDetach := layout.HasClippingAncestor(d.root)
	switch {
	case needsDetach && d.placement == Inline:
		d.detach()
	case !needsDetach && d.placement == Detached:
		d.restore()
	}
	d.open = true
	d.Reposition()
	if !wasOpen {
		d.notifyToggle()
	}
}

// Close hides the panel and puts a detached panel back where it came from.
func (d *Dropdown) Close() {
	wasOpen := d.open
	d.open = false
	if d.placement == Detached {
		d.restore()
	}
	d.direction = Down
	d.panel.Box = layout.Rect{}
	d.coord.release(d)
	if wasOpen {
		d.notifyToggle()
	}
}

func (d *Dropdown) notifyToggle() {
	if d.onToggle != nil {
		d.onToggle(d.name, d.open)
	}
}

// Toggle opens a closed widget and closes an open one.
func (d *Dropdown) Toggle() {
	if d.open {
		d.Close()
		return
	}
	d.Open()
}

func (d *Dropdown) detach() {
	parent, idx := d.panel.Remove()
	d.from = origin{parent: parent, index: idx}
	d.root.Root().Append(d.panel)
	d.placement = Detached
}

func (d *Dropdown) restore() {
	if d.from.parent != nil {
		d.from.parent.Insert(d.panel, d.from.index)
	}
	d.from = origin{}
	d.placement = Inline
}

// Reposition recomputes the panel box from the trigger box and the viewport.
// A trigger that was never measured degrades to an unpositioned inline panel.
func (d *Dropdown) Reposition() {
	if !d.open {
		return
	}
	rb := d.root.Box
	if rb.Empty() {
		if d.placement == Detached {
			d.restore()
		}
		d.direction = Down
		d.panel.Box = layout.Rect{}
		return
	}

	h := d.PanelHeight()
	vp := d.coord.Viewport()
	spaceBelow := vp.H - rb.Bottom()
	spaceAbove := rb.Y
	up := spaceBelow < h && spaceAbove > h

	d.direction = Down
	if up {
		d.direction = Up
	}

	box := layout.Rect{X: rb.X, W: rb.W, H: h}
	if up {
		// panel ends on the row above the trigger
		bottom := vp.H - rb.Y
		box.Y = vp.H - bottom - h
	} else {
		box.Y = rb.Bottom()
	}
	d.panel.Box = box
}

// Select marks exactly one option selected, updates the trigger display and
// emits a Change.
func (d *Dropdown) Select(i int) {
	if i < 0 || i >= len(d.options) {
		return
	}
	for j := range d.options {
		d.options[j].Selected = j == i
	}
	d.selected = i
	opt := d.options[i]
	d.label = opt.Label
	d.icon = opt.Icon
	if d.onChange != nil {
		d.onChange(Change{Widget: d.name, Value: opt.Value, Label: opt.Label})
	}
}

// HandleKey routes a key to the trigger (closed) or the option list (open)
// and reports whether it was consumed. Keys use bubbletea's names.
func (d *Dropdown) HandleKey(k string) bool {
	if len(d.options) == 0 {
		return false
	}
	if !d.open {
		switch k {
		case "down", "j":
			d.Open()
			d.focus(d.remembered(0))
		case "up", "k":
			d.Open()
			d.focus(d.remembered(len(d.options) - 1))
		case "enter", " ":
			d.Toggle()
		default:
			return false
		}
		return true
	}

	n := len(d.options)
	switch k {
	case "enter", " ":
		d.Select(d.focused)
		d.Close()
	case "down", "j":
		d.focus((d.focused + 1) % n)
	case "up", "k":
		d.focus((d.focused - 1 + n) % n)
	case "home", "g":
		d.focus(0)
	case "end", "G":
		d.focus(n - 1)
	case "esc":
		d.Close()
	default:
		return false
	}
	return true
}

// HandleClick processes a pointer press that landed on this widget.
// Clicking the trigger toggles; clicking an option selects it and closes.
func (d *Dropdown) HandleClick(p layout.Point) bool {
	if d.root.Box.Contains(p) {
		d.Toggle()
		return true
	}
	if !d.open || !d.panel.Box.Contains(p) {
		return false
	}
	row := p.Y - d.panel.Box.Y - 1
	if row < 0 || row >= d.visibleRows() {
		return true
	}
	idx := d.offset + row
	if idx < len(d.options) {
		d.focus(idx)
		d.Select(idx)
		d.Close()
	}
	return true
}

func (d *Dropdown) remembered(fallback int) int {
	if d.focused >= 0 && d.focused < len(d.options) {
		return d.focused
	}
	return fallback
}

func (d *Dropdown) focus(i int) {
	d.focused = i
	rows := d.visibleRows()
	if i < d.offset {
		d.offset = i
	}
	if rows > 0 && i >= d.offset+rows {
		d.offset = i - rows + 1
	}
}
