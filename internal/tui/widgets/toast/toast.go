package toast

import (
	"github.com/charmbracelet/lipgloss"

	"snippetkit/internal/tui/util"
)

// Toast is a transient notification. The owner dismisses it when its
// debounce timer fires; showing it again resets that timer.
type Toast struct {
	Message string
	Success bool
	Visible bool
}

// Show returns a visible toast.
func Show(msg string, success bool) Toast {
	return Toast{Message: msg, Success: success, Visible: true}
}

// Hide returns t dismissed.
func (t Toast) Hide() Toast {
	t.Visible = false
	return t
}

// View renders the toast box, or "" when hidden.
func (t Toast) View() string {
	if !t.Visible {
		return ""
	}
	p := util.DefaultPalette()
	icon, color := "✓", p.Success
	if !t.Success {
		icon, color = "✗", p.Danger
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Render(lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon) + " " + t.Message)
}
