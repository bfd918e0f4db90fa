package alert

import (
	"github.com/charmbracelet/lipgloss"

	"snippetkit/internal/tui/util"
)

var hint = lipgloss.NewStyle().Faint(true)

// Alert is a blocking message; input is swallowed until it is dismissed.
type Alert struct {
	Text    string
	Visible bool
}

// Show returns a visible alert.
func Show(text string) Alert { return Alert{Text: text, Visible: true} }

// Dismiss returns a hidden alert.
func (a Alert) Dismiss() Alert {
	a.Visible = false
	return a
}

// HandleKey reports whether k dismisses the alert.
func (a Alert) HandleKey(k string) bool {
	switch k {
	case "enter", "esc", " ", "q":
		return true
	}
	return false
}

// View renders the alert box wrapped to width cells.
func (a Alert) View(width int) string {
	if !a.Visible {
		return ""
	}
	w := max(24, min(width-4, 60))
	body := lipgloss.NewStyle().Width(w - 4).Render(a.Text)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(util.DefaultPalette().Danger).
		Padding(0, 1).
		Render(body + "\n\n" + hint.Render("enter: OK"))
}
