package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"snippetkit/internal/tui/state"
	"snippetkit/internal/tui/widgets/tagchips"
)

var (
	faint  = lipgloss.NewStyle().Faint(true)
	notice = lipgloss.NewStyle().Italic(true)
)

type StatusBar struct {
	NoColor bool
}

func NewStatusBar(noColor bool) StatusBar { return StatusBar{NoColor: noColor} }

// View composes a concise status line reflecting the panel settings,
// cut to width cells when width > 0.
func (b StatusBar) View(s state.UIState, edited bool) string {
	theme := s.ThemeLabel
	if theme == "" {
		theme = "custom"
	}
	parts := []string{
		tagchips.View(tagchips.Chips(s, edited), b.NoColor),
		fmt.Sprintf("%s · %s %dpx", theme, s.Font, s.FontSize),
		faint.Render(fmt.Sprintf("pad %d r %d", s.Padding, s.Radius)),
	}
	if s.Notice != "" {
		parts = append(parts, notice.Render(s.Notice))
	}
	line := strings.Join(parts, "  ")
	if s.Width > 0 {
		line = ansi.Truncate(line, s.Width, "…")
	}
	return line
}
