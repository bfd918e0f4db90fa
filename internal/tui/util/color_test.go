package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, NoColor(false))
	assert.True(t, NoColor(true))
	t.Setenv("NO_COLOR", "1")
	assert.True(t, NoColor(false))
}

func TestFade(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#000000"), Fade("#000000", "#ffffff", 0))
	assert.Equal(t, lipgloss.Color("#ffffff"), Fade("#000000", "#ffffff", 1))
	assert.Equal(t, lipgloss.Color("bogus"), Fade("bogus", "#ffffff", 0.5))
}
