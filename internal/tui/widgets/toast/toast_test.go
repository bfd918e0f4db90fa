package toast

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestToast(t *testing.T) {
	assert.Empty(t, Toast{}.View())

	ts := Show("Image Copied !", true)
	out := ansi.Strip(ts.View())
	assert.Contains(t, out, "✓ Image Copied !")
	assert.Empty(t, ts.Hide().View())

	assert.Contains(t, ansi.Strip(Show("nope", false).View()), "✗ nope")
}
