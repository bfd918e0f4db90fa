package tagchips

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snippetkit/internal/tui/state"
)

func TestChipsOrder(t *testing.T) {
	s := state.UIState{Mode: state.INSERT, Dark: true, Detected: "go"}
	chips := Chips(s, true)
	kinds := make([]Kind, len(chips))
	for i, c := range chips {
		kinds[i] = c.Kind
	}
	assert.Equal(t, []Kind{INSERT, EDITED, LANGUAGE, MODE, BACKGROUND}, kinds)
	assert.Equal(t, "auto: go", chips[2].Label)
	assert.True(t, chips[4].Off)
}

func TestASCIIFallback(t *testing.T) {
	s := state.UIState{Language: "rust", Background: true}
	out := View(Chips(s, false), true)
	assert.Equal(t, "[rust] [Light] [BG]", out)

	s.Background = false
	assert.Contains(t, View(Chips(s, false), true), "[BG off]")
	assert.Empty(t, View(nil, true))
}
