package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color
	MutedDark lipgloss.Color
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#3D6DFF"),
		Success:   lipgloss.Color("#2AA876"),
		Danger:    lipgloss.Color("#D9534F"),
		Warning:   lipgloss.Color("#F0AD4E"),
		Muted:     lipgloss.Color("#6C757D"),
		MutedDark: lipgloss.Color("#5A5A5A"),
	}
}

// Hex renders c as a lipgloss colour.
func Hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// Fade mixes hex toward bg by t in [0,1]; used for dimmed text on a known
// background. Unparseable input is returned unchanged.
func Fade(hex, bg string, t float64) lipgloss.Color {
	a, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(hex)
	}
	return Hex(a.BlendRgb(b, t))
}
