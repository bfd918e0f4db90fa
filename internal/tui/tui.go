package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"snippetkit/internal/catalog"
	"snippetkit/internal/config"
	"snippetkit/internal/debounce"
	"snippetkit/internal/export"
	"snippetkit/internal/highlight"
	"snippetkit/internal/render"
	"snippetkit/internal/tui/dropdown"
	"snippetkit/internal/tui/layout"
	"snippetkit/internal/tui/state"
	"snippetkit/internal/tui/widgets/alert"
	"snippetkit/internal/tui/widgets/diff"
	"snippetkit/internal/tui/widgets/editor"
	"snippetkit/internal/tui/widgets/helpoverlay"
	"snippetkit/internal/tui/widgets/preview"
	"snippetkit/internal/tui/widgets/slider"
	"snippetkit/internal/tui/widgets/statusbar"
	"snippetkit/internal/tui/widgets/toast"
)

// ErrNoPanel means the code panel got no room on screen, so the UI cannot
// initialize.
var ErrNoPanel = errors.New("code panel container has no size")

// Exporter performs one export action; failures are reported in the Result.
type Exporter interface {
	Run(ctx context.Context, a export.Action, s render.Scene) export.Result
}

// Options configure a session. Config, Catalog and Highlighter default to
// the built-ins; Exporter is required.
type Options struct {
	Config      *config.Config
	Catalog     *catalog.Catalog
	Highlighter *highlight.Highlighter
	Exporter    Exporter
	// Text is the initial buffer.
	Text    string
	Title   string
	NoColor bool
}

// Run shows the editor on the alternate screen and blocks until the user
// quits.
func Run(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}

// ===== Model =====

const (
	sideW    = 30
	toolbarH = 3
	footerH  = 2
	triggerH = 3
	// two triggers, three sliders, three toggles, title label and input,
	// with their spacer rows
	sideContentH = 2*triggerH + 1 + 3 + 1 + 3 + 2 + 1
)

type focusID int

const (
	focusThemes focusID = iota
	focusLanguages
	focusFonts
	focusPadding
	focusRadius
	focusFontSize
	focusDark
	focusBackground
	focusControls
	focusTitle
	focusCount
)

type exportDoneMsg export.Result

type model struct {
	opts    Options
	state   state.UIState
	initial string

	// layout tree: body > app > {toolbar, side, panel}
	tree    *layout.Node
	toolbar *layout.Node
	side    *layout.Node
	panel   *layout.Node

	coord                    *dropdown.Coordinator
	themes, languages, fonts *dropdown.Dropdown

	sliders      [3]slider.Slider // padding, radius, font size
	sliderBoxes  [3]layout.Rect
	toggleBoxes  [3]layout.Rect // dark, background, controls
	title        textinput.Model
	titleBox     layout.Rect
	editingTitle bool
	titleBefore  string

	editor  editor.Editor
	preview preview.Preview
	result  highlight.Result

	hlTimer, syncTimer, toastTimer *debounce.Timer
	needHighlight, needSync        bool

	toast       toast.Toast
	alert       alert.Alert
	help        helpoverlay.HelpOverlay
	shortHelp   help.Model
	status      statusbar.StatusBar
	changes     diff.DiffView
	showHelp    bool
	showChanges bool

	sideScroll int

	focus focusID
	ready bool
	err   error
}

func newModel(opts Options) (*model, error) {
	if opts.Exporter == nil {
		return nil, errors.New("tui: no exporter configured")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Catalog == nil {
		c, err := catalog.Builtin()
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	if opts.Highlighter == nil {
		opts.Highlighter = highlight.New(opts.Config.DarkStyle, opts.Config.LightStyle)
	}
	cfg := opts.Config

	m := &model{
		opts:       opts,
		initial:    opts.Text,
		state:      state.FromConfig(cfg, opts.Catalog),
		hlTimer:    debounce.New("highlight", debounce.Highlight),
		syncTimer:  debounce.New("style-sync", debounce.StyleSync),
		toastTimer: debounce.New("toast", debounce.Toast),
		help:       helpoverlay.NewHelpOverlay(),
		shortHelp:  help.New(),
		status:     statusbar.NewStatusBar(opts.NoColor),
		changes:    diff.NewDiffView(),
		editor:     editor.NewEditor(opts.Text),
	}

	m.tree = layout.NewNode("body", layout.Style{})
	app := m.tree.Append(layout.NewNode("app", layout.Style{}))
	m.toolbar = app.Append(layout.NewNode("toolbar", layout.Style{OverflowX: layout.Hidden, OverflowY: layout.Hidden}))
	m.side = app.Append(layout.NewNode("side", layout.Style{}))
	m.panel = app.Append(layout.NewNode("panel", layout.Style{OverflowY: layout.Hidden}))

	m.coord = dropdown.NewCoordinator(layout.Size{})
	onChange := func(c dropdown.Change) { m.onChange(c) }
	onToggle := func(name string, open bool) { slog.Debug("dropdown", "name", name, "open", open) }
	m.themes = dropdown.New(m.coord, dropdown.Config{
		Name: catalog.Themes, Parent: m.toolbar, OnChange: onChange, OnToggle: onToggle,
		Options: options(opts.Catalog.Themes, cfg.Theme, "Custom"),
	})
	m.languages = dropdown.New(m.coord, dropdown.Config{
		Name: catalog.Languages, Parent: m.side, OnChange: onChange, OnToggle: onToggle,
		Options: options(opts.Catalog.Languages, cfg.Language, ""),
	})
	m.fonts = dropdown.New(m.coord, dropdown.Config{
		Name: catalog.Fonts, Parent: m.side, OnChange: onChange, OnToggle: onToggle,
		Options: options(opts.Catalog.Fonts, cfg.Font, ""),
	})

	m.sliders = [3]slider.Slider{
		slider.New("padding", "Padding", config.PaddingMin, config.PaddingMax, m.state.Padding),
		slider.New("radius", "Radius", config.RadiusMin, config.RadiusMax, m.state.Radius),
		slider.New("fontsize", "Font size", config.FontSizeMin, config.FontSizeMax, m.state.FontSize),
	}
	m.sliders[0].Step = 4

	m.title = textinput.New()
	m.title.Prompt = ""
	m.title.Placeholder = "Untitled"
	m.title.CharLimit = 80
	if opts.Title != "" {
		m.title.SetValue(opts.Title)
		m.state = state.SetTitle(m.state, opts.Title)
	}

	m.needHighlight, m.needSync = false, false
	m.highlight()
	return m, nil
}

// options converts a collection for a dropdown. A configured key that is not
// in the catalog becomes a leading entry so it survives the initial
// selection announcement.
func options(entries []catalog.Entry, key, label string) []dropdown.Option {
	if key != "" {
		if _, ok := catalog.Find(entries, key); !ok {
			if label == "" {
				label = key
			}
			entries = append([]catalog.Entry{{Label: label, Value: key}}, entries...)
		}
	}
	return catalog.Options(entries, key)
}

func (m *model) dropdowns() []*dropdown.Dropdown {
	return []*dropdown.Dropdown{m.themes, m.languages, m.fonts}
}

func (m *model) onChange(c dropdown.Change) {
	m.state = state.ApplyChange(m.state, c)
	slog.Debug("selection changed", "widget", c.Widget, "value", c.Value, "label", c.Label)
	m.needHighlight = true
	m.needSync = true
}

func (m *model) Init() tea.Cmd { return nil }

// highlight re-runs detection and tokenizing on the current buffer.
func (m *model) highlight() {
	code := m.editor.Value()
	m.state = state.Detect(m.state, code)
	res, err := m.opts.Highlighter.Highlight(code, state.Tag(m.state), m.state.Dark)
	if err != nil {
		slog.Warn("highlight failed", "err", err)
		res = highlight.Result{}
		for _, l := range highlight.PlainLines(code) {
			res.Lines = append(res.Lines, highlight.Line{{Text: l}})
		}
	}
	m.result = res
}

// syncEditor mirrors the preview geometry onto the editor.
func (m *model) syncEditor() {
	b := m.panel.Box
	m.editor.SetSize(b.W-2, b.H)
}

func (m *model) edited() bool { return m.editor.Value() != m.initial }

func (m *model) exportCmd(a export.Action) tea.Cmd {
	sc := state.Scene(m.state, m.editor.Value())
	ex := m.opts.Exporter
	m.state.Notice = a.String() + "…"
	return func() tea.Msg {
		return exportDoneMsg(ex.Run(context.Background(), a, sc))
	}
}

func (m *model) exportDone(res export.Result) tea.Cmd {
	m.state.Notice = ""
	if res.Err != nil {
		m.alert = alert.Show(res.Message)
		return nil
	}
	if res.Path != "" {
		m.state.Notice = res.Path
	}
	m.toast = toast.Show(res.Message, true)
	return m.toastTimer.Trigger()
}

func (m *model) setSlider(i int, s slider.Slider) {
	m.sliders[i] = s
	switch i {
	case 0:
		m.state = state.SetPadding(m.state, s.Value)
	case 1:
		m.state = state.SetRadius(m.state, s.Value)
	case 2:
		m.state = state.SetFontSize(m.state, s.Value)
	}
	m.needSync = true
}

func (m *model) toggle(f focusID) {
	switch f {
	case focusDark:
		m.state = state.ToggleDark(m.state)
		m.needHighlight = true
	case focusBackground:
		m.state = state.ToggleBackground(m.state)
	case focusControls:
		m.state = state.ToggleControls(m.state)
	}
}

func (m *model) moveFocus(delta int) {
	m.coord.CloseAll()
	m.focus = (m.focus + focusID(delta) + focusCount) % focusCount
}

func (m *model) startTitle() tea.Cmd {
	m.coord.CloseAll()
	m.focus = focusTitle
	m.editingTitle = true
	m.titleBefore = m.title.Value()
	return m.title.Focus()
}

func (m *model) endTitle(keep bool) {
	if !keep {
		m.title.SetValue(m.titleBefore)
	}
	m.title.Blur()
	m.editingTitle = false
	m.state = state.SetTitle(m.state, m.title.Value())
}

// relayout measures every node for the current terminal size.
func (m *model) relayout() {
	w, h := m.state.Width, m.state.Height
	bodyH := h - toolbarH - footerH
	sw := min(sideW, w)

	m.tree.Box = layout.Rect{W: w, H: h}
	m.tree.Children()[0].Box = m.tree.Box
	m.toolbar.Box = layout.Rect{W: w, H: toolbarH}
	m.side.Box = layout.Rect{Y: toolbarH, W: sw, H: bodyH}
	m.panel.Box = layout.Rect{X: sw, Y: toolbarH, W: w - sw, H: bodyH}

	m.themes.SetBounds(layout.Rect{W: min(28, w), H: triggerH})
	m.sideScroll = min(m.sideScroll, max(0, sideContentH-bodyH))
	inner := max(1, sw-1)
	y := toolbarH - m.sideScroll
	m.languages.SetBounds(layout.Rect{Y: y, W: inner, H: triggerH})
	y += triggerH
	m.fonts.SetBounds(layout.Rect{Y: y, W: inner, H: triggerH})
	y += triggerH + 1
	for i := range m.sliderBoxes {
		m.sliderBoxes[i] = layout.Rect{Y: y, W: inner, H: 1}
		y++
	}
	y++
	for i := range m.toggleBoxes {
		m.toggleBoxes[i] = layout.Rect{Y: y, W: inner, H: 1}
		y++
	}
	y += 2 // blank + label
	m.titleBox = layout.Rect{Y: y, W: inner, H: 1}
	m.title.Width = max(1, inner-2)
	m.shortHelp.Width = w

	m.coord.Resize(layout.Size{W: w, H: h})
}

// scrollSide scrolls the side panel by delta rows when its controls do not
// fit, and lets an open list follow its trigger.
func (m *model) scrollSide(delta int) {
	limit := max(0, sideContentH-m.side.Box.H)
	next := max(0, min(m.sideScroll+delta, limit))
	dy := m.sideScroll - next
	if dy == 0 {
		return
	}
	m.sideScroll = next
	m.languages.Shift(0, dy)
	m.fonts.Shift(0, dy)
	for i := range m.sliderBoxes {
		m.sliderBoxes[i].Y += dy
	}
	for i := range m.toggleBoxes {
		m.toggleBoxes[i].Y += dy
	}
	m.titleBox.Y += dy
	m.coord.Scrolled()
}

// onSide reports whether r is fully inside the visible side panel.
func (m *model) onSide(r layout.Rect) bool {
	return r.Y >= m.side.Box.Y && r.Bottom() <= m.side.Box.Bottom()
}
