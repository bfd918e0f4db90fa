package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"snippetkit/internal/debounce"
	"snippetkit/internal/export"
	"snippetkit/internal/tui/layout"
	"snippetkit/internal/tui/state"
)

// Update handles all TUI interactions.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state = state.Resize(m.state, msg.Width, msg.Height)
		m.relayout()
		if !m.ready {
			if m.panel.Box.Empty() {
				m.err = ErrNoPanel
				slog.Error("cannot initialize editor", "err", ErrNoPanel, "width", msg.Width, "height", msg.Height)
				return m, tea.Quit
			}
			m.ready = true
		}
		m.needSync = true

	case debounce.Msg:
		switch {
		case m.hlTimer.Fire(msg):
			m.highlight()
		case m.syncTimer.Fire(msg):
			m.syncEditor()
		case m.toastTimer.Fire(msg):
			m.toast = m.toast.Hide()
		}

	case exportDoneMsg:
		cmds = append(cmds, m.exportDone(export.Result(msg)))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	default:
		// cursor blink and friends
		var cmd tea.Cmd
		if m.state.Mode == state.INSERT {
			m.editor, cmd, _ = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.editingTitle {
			m.title, cmd = m.title.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.needHighlight {
		m.needHighlight = false
		cmds = append(cmds, m.hlTimer.Trigger())
	}
	if m.needSync {
		m.needSync = false
		cmds = append(cmds, m.syncTimer.Trigger())
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		return tea.Quit
	}
	// blocking layers swallow everything
	if m.alert.Visible {
		if m.alert.HandleKey(k) {
			m.alert = m.alert.Dismiss()
		}
		return nil
	}
	if m.showHelp {
		switch k {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return nil
	}
	m.state.Notice = ""

	if m.state.Mode == state.INSERT {
		if key.Matches(msg, keys.Command) {
			m.state = state.ToggleMode(m.state)
			m.editor.Blur()
			return nil
		}
		var cmd tea.Cmd
		var changed bool
		m.editor, cmd, changed = m.editor.Update(msg)
		if changed {
			m.needHighlight = true
			m.needSync = true
		}
		return cmd
	}

	if m.editingTitle {
		switch k {
		case "enter":
			m.endTitle(true)
			return nil
		case "esc":
			m.endTitle(false)
			return nil
		}
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		m.state = state.SetTitle(m.state, m.title.Value())
		return cmd
	}

	if m.showChanges {
		switch {
		case key.Matches(msg, keys.Changes), k == "esc":
			m.showChanges = false
		case key.Matches(msg, keys.DiffView):
			m.state = state.ToggleView(m.state)
		case key.Matches(msg, keys.Quit):
			return tea.Quit
		}
		return nil
	}

	if d := m.coord.Current(); d != nil {
		if d.HandleKey(k) {
			return nil
		}
		if key.Matches(msg, keys.Next, keys.Prev) {
			d.Close()
		}
	}
	if handled, cmd := m.focusKey(k); handled {
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, keys.Insert):
		m.coord.CloseAll()
		m.state = state.ToggleMode(m.state)
		return m.editor.Focus()
	case key.Matches(msg, keys.Title):
		return m.startTitle()
	case key.Matches(msg, keys.SavePNG):
		return m.exportCmd(export.SavePNG)
	case key.Matches(msg, keys.SaveSVG):
		return m.exportCmd(export.SaveSVG)
	case key.Matches(msg, keys.CopyImage):
		return m.exportCmd(export.CopyImage)
	case key.Matches(msg, keys.CopyLink):
		return m.exportCmd(export.CopyLink)
	case key.Matches(msg, keys.CopyText):
		return m.exportCmd(export.CopyText)
	case key.Matches(msg, keys.Dark):
		m.toggle(focusDark)
	case key.Matches(msg, keys.Background):
		m.toggle(focusBackground)
	case key.Matches(msg, keys.Controls):
		m.toggle(focusControls)
	case key.Matches(msg, keys.Changes):
		m.coord.CloseAll()
		m.showChanges = true
	case key.Matches(msg, keys.DiffView):
		m.state = state.ToggleView(m.state)
	case key.Matches(msg, keys.Help):
		m.coord.CloseAll()
		m.showHelp = true
	}
	return nil
}

// focusKey routes k to the focused control.
func (m *model) focusKey(k string) (bool, tea.Cmd) {
	switch m.focus {
	case focusThemes, focusLanguages, focusFonts:
		return m.dropdowns()[m.focus].HandleKey(k), nil
	case focusPadding, focusRadius, focusFontSize:
		i := int(m.focus - focusPadding)
		s, ok := m.sliders[i].HandleKey(k)
		if ok {
			m.setSlider(i, s)
		}
		return ok, nil
	case focusDark, focusBackground, focusControls:
		if k == "enter" || k == " " {
			m.toggle(m.focus)
			return true, nil
		}
	case focusTitle:
		if k == "enter" {
			return true, m.startTitle()
		}
	}
	return false, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.alert.Visible || m.showHelp || m.editingTitle {
		return nil
	}
	p := layout.Point{X: msg.X, Y: msg.Y}
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelUp:
		down := msg.Button == tea.MouseButtonWheelDown
		if d := m.coord.Current(); d != nil && d.Panel().Box.Contains(p) {
			if down {
				d.HandleKey("down")
			} else {
				d.HandleKey("up")
			}
			return nil
		}
		if m.side.Box.Contains(p) {
			if down {
				m.scrollSide(1)
			} else {
				m.scrollSide(-1)
			}
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	// the open widget's panel may float over other controls
	if cur := m.coord.Current(); cur != nil && cur.HandleClick(p) {
		return nil
	}
	m.coord.Click(p)
	for i, d := range m.dropdowns() {
		if i > 0 && !m.onSide(d.Root().Box) && !d.IsOpen() {
			continue
		}
		if d.HandleClick(p) {
			m.focus = focusID(i)
			return nil
		}
	}
	if m.state.Mode == state.INSERT {
		return nil
	}
	for i, b := range m.sliderBoxes {
		if m.onSide(b) && b.Contains(p) {
			m.focus = focusPadding + focusID(i)
			m.setSlider(i, m.sliders[i].SetFromX(p.X-b.X, b.W))
			return nil
		}
	}
	for i, b := range m.toggleBoxes {
		if m.onSide(b) && b.Contains(p) {
			m.focus = focusDark + focusID(i)
			m.toggle(m.focus)
			return nil
		}
	}
	if m.onSide(m.titleBox) && m.titleBox.Contains(p) {
		return m.startTitle()
	}
	if m.panel.Box.Contains(p) && !m.showChanges {
		m.state = state.ToggleMode(m.state)
		return m.editor.Focus()
	}
	return nil
}
