package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snippetkit/internal/tui/state"
	"snippetkit/internal/tui/util"
)

// Kind orders the chips: Insert, Edited, Language, Mode, Background.
type Kind int

const (
	INSERT Kind = iota
	EDITED
	LANGUAGE
	MODE
	BACKGROUND
)

// Chip is one status label. Off chips render muted.
type Chip struct {
	Kind  Kind
	Label string
	Off   bool
}

// Chips derives the chip row from the panel state. edited reports whether the
// buffer differs from the text the session started with.
func Chips(s state.UIState, edited bool) []Chip {
	var out []Chip
	if s.Mode == state.INSERT {
		out = append(out, Chip{Kind: INSERT, Label: "INSERT"})
	}
	if edited {
		out = append(out, Chip{Kind: EDITED, Label: "Edited"})
	}
	out = append(out, Chip{Kind: LANGUAGE, Label: state.LanguageLabel(s)})
	mode := "Dark"
	if !s.Dark {
		mode = "Light"
	}
	out = append(out, Chip{Kind: MODE, Label: mode})
	out = append(out, Chip{Kind: BACKGROUND, Label: "BG", Off: !s.Background})
	return out
}

// View renders chips in order using colored blocks when possible and ASCII
// fallbacks when color is disabled.
func View(chips []Chip, noColor bool) string {
	if len(chips) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		parts = append(parts, renderChip(c, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(c Chip, noColor bool) string {
	if noColor {
		if c.Off {
			return fmt.Sprintf("[%s off]", c.Label)
		}
		return fmt.Sprintf("[%s]", c.Label)
	}
	return chipStyle(c).Render(c.Label)
}

func chipStyle(c Chip) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	if c.Off {
		return base.Background(p.MutedDark).Strikethrough(true)
	}
	switch c.Kind {
	case INSERT:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case EDITED:
		return base.Background(p.Primary)
	case LANGUAGE:
		return base.Background(p.Success)
	case MODE:
		return base.Background(p.Muted)
	}
	return base.Background(p.MutedDark)
}
