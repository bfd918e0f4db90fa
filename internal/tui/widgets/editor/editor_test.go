package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"snippetkit/internal/tui/state"
)

func TestTypingChangesBuffer(t *testing.T) {
	e := NewEditor("")
	e.SetSize(40, 10)
	e.Focus()
	e, _, changed := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x := 1")})
	assert.True(t, changed)
	assert.Equal(t, "x := 1", e.Value())

	_, _, changed = e.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed, "cursor moves do not edit")
}

func TestBlurredEditorIgnoresKeys(t *testing.T) {
	e := NewEditor("abc")
	e, _, changed := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.False(t, changed)
	assert.Equal(t, "abc", e.Value())
}

func TestHeader(t *testing.T) {
	e := NewEditor("print(1)")
	e.SetSize(40, 5)
	out := ansi.Strip(e.View(state.UIState{Mode: state.INSERT, Language: "python"}))
	assert.Contains(t, out, "[INSERT]")
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "print(1)")
}
