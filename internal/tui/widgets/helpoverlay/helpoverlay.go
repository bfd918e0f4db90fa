package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"snippetkit/internal/tui/state"
)

var (
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	secStyle   = lipgloss.NewStyle().Underline(true)
)

// Section is a titled group of bindings.
type Section struct {
	Title string
	Keys  []key.Binding
}

type HelpOverlay struct {
	Help help.Model
}

func NewHelpOverlay() HelpOverlay {
	h := help.New()
	h.ShowAll = true
	return HelpOverlay{Help: h}
}

// View returns grouped keys help with the current mode indicated.
func (o HelpOverlay) View(s state.UIState, sections []Section) string {
	mode := "CMD"
	if s.Mode == state.INSERT {
		mode = "INSERT"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Help (Mode: %s)", mode)))
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n\n%s\n", secStyle.Render(sec.Title))
		b.WriteString(o.Help.FullHelpView([][]key.Binding{sec.Keys}))
	}
	return boxStyle.Render(b.String())
}
