package diff

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippetkit/internal/tui/state"
)

func TestUnifiedSnapshot(t *testing.T) {
	v := NewDiffView()
	s := state.UIState{View: state.Unified}
	out := ansi.Strip(v.View(s, "a\nb", "a\nc"))
	assert.True(t, strings.HasPrefix(out, "ORIGINAL vs CURRENT (Unified)\n"))
	assert.Contains(t, out, "  a\n")
	assert.Contains(t, out, "- b\n")
	assert.Contains(t, out, "+ c\n")
}

func TestUnifiedInsertedLines(t *testing.T) {
	out := ansi.Strip(NewDiffView().View(state.UIState{}, "one\nthree", "one\ntwo\nthree"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  one", lines[1])
	assert.Equal(t, "+ two", lines[2])
	assert.Equal(t, "  three", lines[3])
}

func TestNoChanges(t *testing.T) {
	assert.Equal(t, "No changes\n", NewDiffView().View(state.UIState{}, "x", "x"))
}

func TestSideBySideSnapshot(t *testing.T) {
	v := NewDiffView()
	s := state.UIState{View: state.SideBySide, Width: 60}
	out := ansi.Strip(v.View(s, "left", "right"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ORIGINAL"))
	assert.Contains(t, lines[0], " │ CURRENT")
	assert.Contains(t, lines[1], "- left")
	assert.Contains(t, lines[1], " │ + right")
}
