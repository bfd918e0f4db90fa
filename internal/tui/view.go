package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"snippetkit/internal/tui/layout"
	"snippetkit/internal/tui/state"
	"snippetkit/internal/tui/widgets/preview"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m *model) View() string {
	if !m.ready {
		return ""
	}
	w, h := m.state.Width, m.state.Height
	if m.panel.Box.Empty() {
		return "Terminal too small"
	}
	frame := blank(w, h)

	// toolbar
	tb := m.themes.Root().Box
	frame = layout.Place(frame, m.themes.TriggerView(m.focus == focusThemes), tb.X, tb.Y)
	hint := faintStyle.Render("p png · s svg · c copy · l link · y text · ? help")
	frame = layout.Place(frame, ansi.Truncate(hint, max(0, w-tb.W-2), "…"), tb.Right()+2, 1)

	// side panel
	for i, d := range m.dropdowns()[1:] {
		b := d.Root().Box
		if !m.onSide(b) {
			continue
		}
		frame = layout.Place(frame, d.TriggerView(m.focus == focusLanguages+focusID(i)), b.X, b.Y)
	}
	for i, s := range m.sliders {
		b := m.sliderBoxes[i]
		if !m.onSide(b) {
			continue
		}
		frame = layout.Place(frame, s.View(b.W, m.focus == focusPadding+focusID(i)), b.X, b.Y)
	}
	toggles := []struct {
		label string
		on    bool
	}{
		{"Dark mode", m.state.Dark},
		{"Background", m.state.Background},
		{"Window buttons", m.state.WindowControls},
	}
	for i, t := range toggles {
		b := m.toggleBoxes[i]
		if !m.onSide(b) {
			continue
		}
		frame = layout.Place(frame, checkbox(t.label, t.on, m.focus == focusDark+focusID(i)), b.X, b.Y)
	}
	label := titleStyle.Render("Title")
	if m.focus == focusTitle {
		label = selStyle.Render("Title")
	}
	if m.onSide(m.titleBox) && m.titleBox.Y-1 >= m.side.Box.Y {
		frame = layout.Place(frame, label, m.titleBox.X, m.titleBox.Y-1)
		frame = layout.Place(frame, m.title.View(), m.titleBox.X, m.titleBox.Y)
	}

	// code panel
	pb := m.panel.Box
	frame = layout.Place(frame, m.mainView(), pb.X, pb.Y)

	// footer
	frame = layout.Place(frame, m.status.View(m.state, m.edited()), 0, h-footerH)
	frame = layout.Place(frame, m.shortHelp.ShortHelpView(keys.ShortHelp()), 0, h-1)

	// floating layers
	for _, d := range m.dropdowns() {
		if !d.IsOpen() {
			continue
		}
		box := d.Panel().Box
		if box.Empty() {
			continue
		}
		view, at := layout.Clip(d.PanelView(), box, layout.VisibleRect(d.Panel(), box))
		frame = layout.Place(frame, view, at.X, at.Y)
	}
	if t := m.toast.View(); t != "" {
		frame = layout.Place(frame, t, w-lipgloss.Width(t)-1, h-footerH-lipgloss.Height(t))
	}
	if m.showHelp {
		frame = center(frame, m.help.View(m.state, keys.sections()), w, h)
	}
	if m.alert.Visible {
		frame = center(frame, m.alert.View(w), w, h)
	}
	return frame
}

// mainView renders the code panel: the preview, the editor in INSERT mode,
// or the changes overlay.
func (m *model) mainView() string {
	b := m.panel.Box
	var content string
	switch {
	case m.showChanges:
		s := m.state
		s.Width = b.W
		content = titleStyle.Render("Changes") + faintStyle.Render("  v: view · d/esc: close") + "\n" +
			m.changes.View(s, m.initial, m.editor.Value())
	case m.state.Mode == state.INSERT:
		content = m.editor.View(m.state)
	default:
		content = m.preview.View(m.result, preview.Options{
			Width:          b.W,
			Height:         b.H,
			Padding:        m.state.Padding,
			Radius:         m.state.Radius,
			Title:          m.state.Title,
			Controls:       m.state.WindowControls,
			ShowBackground: m.state.Background,
			Background:     m.state.Theme,
			Dark:           m.state.Dark,
		})
		content = lipgloss.Place(b.W, b.H, lipgloss.Center, lipgloss.Center, content)
	}
	return lipgloss.NewStyle().MaxWidth(b.W).MaxHeight(b.H).Render(content)
}

func checkbox(label string, on, focused bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	s := box + " " + label
	if focused {
		return selStyle.Render("› " + s)
	}
	return "  " + s
}

func blank(w, h int) string {
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func center(bg, fg string, w, h int) string {
	x := max(0, (w-lipgloss.Width(fg))/2)
	y := max(0, (h-lipgloss.Height(fg))/2)
	return layout.Place(bg, fg, x, y)
}
