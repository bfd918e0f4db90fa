package helpoverlay

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"snippetkit/internal/tui/state"
)

func TestHelpSections(t *testing.T) {
	secs := []Section{
		{Title: "Export", Keys: []key.Binding{
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "save PNG")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save SVG")),
		}},
		{Title: "Editor", Keys: []key.Binding{
			key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "INSERT mode")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled()),
		}},
	}
	out := ansi.Strip(NewHelpOverlay().View(state.UIState{Mode: state.INSERT}, secs))
	assert.Contains(t, out, "Help (Mode: INSERT)")
	assert.Contains(t, out, "Export")
	assert.Contains(t, out, "save PNG")
	assert.Contains(t, out, "save SVG")
	assert.Contains(t, out, "INSERT mode")
	assert.NotContains(t, out, "hidden")
}
