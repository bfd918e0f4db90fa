package slider

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Width(10)
	fillStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"})
	trackStyle = lipgloss.NewStyle().Faint(true)
	knobStyle  = lipgloss.NewStyle().Bold(true)
	focusStyle = lipgloss.NewStyle().Reverse(true)
)

// Slider is an integer range input.
type Slider struct {
	Name  string
	Label string
	Min   int
	Max   int
	Step  int
	Value int
	Unit  string
}

// New returns a slider clamped to [lo, hi].
func New(name, label string, lo, hi, value int) Slider {
	s := Slider{Name: name, Label: label, Min: lo, Max: hi, Step: 1, Unit: "px"}
	return s.Set(value)
}

// Set returns the slider at v, clamped.
func (s Slider) Set(v int) Slider {
	s.Value = max(s.Min, min(s.Max, v))
	return s
}

// Percent is the filled share of the track, 0-100.
func (s Slider) Percent() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return float64(s.Value-s.Min) / float64(s.Max-s.Min) * 100
}

// HandleKey moves the value: left/right by Step, shift+left/right or
// pgdown/pgup by a tenth of the range, home/end to the edges.
func (s Slider) HandleKey(k string) (Slider, bool) {
	step := max(1, s.Step)
	big := max(step, (s.Max-s.Min)/10)
	switch k {
	case "left", "-":
		return s.Set(s.Value - step), true
	case "right", "+", "=":
		return s.Set(s.Value + step), true
	case "shift+left", "pgdown":
		return s.Set(s.Value - big), true
	case "shift+right", "pgup":
		return s.Set(s.Value + big), true
	case "home":
		return s.Set(s.Min), true
	case "end":
		return s.Set(s.Max), true
	}
	return s, false
}

// trackWidth is the cell width of the track for a total widget width.
func trackWidth(width int) int {
	return max(4, width-labelStyle.GetWidth()-6)
}

// SetFromX maps a click at column x (relative to the widget) onto the track.
func (s Slider) SetFromX(x, width int) Slider {
	tw := trackWidth(width)
	col := x - labelStyle.GetWidth()
	if col < 0 || col >= tw {
		return s
	}
	v := s.Min + int(float64(col)/float64(tw-1)*float64(s.Max-s.Min)+0.5)
	return s.Set(v)
}

// View renders "Label ━━━━●──── 64px" in width cells.
func (s Slider) View(width int, focused bool) string {
	tw := trackWidth(width)
	knob := int(s.Percent()/100*float64(tw-1) + 0.5)
	var b strings.Builder
	b.WriteString(fillStyle.Render(strings.Repeat("━", knob)))
	b.WriteString(knobStyle.Render("●"))
	b.WriteString(trackStyle.Render(strings.Repeat("─", tw-knob-1)))

	label := s.Label
	if focused {
		label = focusStyle.Render(label)
	}
	return labelStyle.Render(label) + b.String() + fmt.Sprintf(" %3d%s", s.Value, s.Unit)
}
