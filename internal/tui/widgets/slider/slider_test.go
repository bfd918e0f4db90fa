package slider

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	s := New("padding", "Padding", 16, 128, 72)
	assert.InDelta(t, 50.0, s.Percent(), 0.001)
	assert.Equal(t, 0.0, New("x", "X", 5, 5, 5).Percent())
	assert.Equal(t, 128, s.Set(500).Value)
}

func TestKeys(t *testing.T) {
	s := New("radius", "Radius", 0, 40, 12)
	s, ok := s.HandleKey("right")
	assert.True(t, ok)
	assert.Equal(t, 13, s.Value)
	s, _ = s.HandleKey("pgdown")
	assert.Equal(t, 9, s.Value)
	s, _ = s.HandleKey("end")
	assert.Equal(t, 40, s.Value)
	s, _ = s.HandleKey("right")
	assert.Equal(t, 40, s.Value, "clamped")
	_, ok = s.HandleKey("x")
	assert.False(t, ok)
}

func TestViewAndClick(t *testing.T) {
	s := New("fontsize", "Font size", 10, 32, 10)
	out := ansi.Strip(s.View(40, false))
	assert.Equal(t, 40, ansi.StringWidth(out))
	assert.Contains(t, out, "●")
	assert.Contains(t, out, " 10px")

	tw := trackWidth(40)
	s = s.SetFromX(labelStyle.GetWidth()+tw-1, 40)
	assert.Equal(t, 32, s.Value)
	s = s.SetFromX(labelStyle.GetWidth(), 40)
	assert.Equal(t, 10, s.Value)
	assert.Equal(t, 10, s.SetFromX(2, 40).Value, "label clicks are ignored")
}
