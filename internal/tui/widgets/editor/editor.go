package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snippetkit/internal/tui/state"
)

var headerStyle = lipgloss.NewStyle().Faint(true)

// Editor is the code buffer. It only takes keystrokes in INSERT mode.
type Editor struct {
	ta textarea.Model
}

// NewEditor returns an editor holding text.
func NewEditor(text string) Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = "Paste or type code…"
	ta.SetValue(text)
	ta.Blur()
	return Editor{ta: ta}
}

// Value is the buffer contents.
func (e Editor) Value() string { return e.ta.Value() }

// SetValue replaces the buffer.
func (e *Editor) SetValue(s string) { e.ta.SetValue(s) }

// SetSize fits the text area into w x h cells, header included.
func (e *Editor) SetSize(w, h int) {
	e.ta.SetWidth(max(10, w))
	e.ta.SetHeight(max(1, h-1))
}

// Focus starts accepting input.
func (e *Editor) Focus() tea.Cmd { return e.ta.Focus() }

// Blur stops accepting input.
func (e *Editor) Blur() { e.ta.Blur() }

// Focused reports whether the editor takes input.
func (e Editor) Focused() bool { return e.ta.Focused() }

// Update forwards msg to the text area and reports whether the buffer changed.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd, bool) {
	before := e.ta.Value()
	var cmd tea.Cmd
	e.ta, cmd = e.ta.Update(msg)
	return e, cmd, e.ta.Value() != before
}

// View renders a mode header over the text area.
func (e Editor) View(s state.UIState) string {
	header := "[CMD]"
	if s.Mode == state.INSERT {
		header = "[INSERT]"
	}
	info := e.ta.LineInfo()
	pos := fmt.Sprintf("Ln %d, Col %d", e.ta.Line()+1, info.ColumnOffset+info.StartColumn+1)
	return headerStyle.Render(header+"  "+pos+"  "+state.LanguageLabel(s)) + "\n" + e.ta.View()
}
