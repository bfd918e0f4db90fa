package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	triggerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"}).
			Padding(0, 1)
	triggerFocusStyle = triggerStyle.
				BorderForeground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"})
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "244", Dark: "244"})
	rowStyle     = lipgloss.NewStyle()
	rowFocus     = lipgloss.NewStyle().Reverse(true)
	tickStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	caretStyle   = lipgloss.NewStyle().Faint(true)
	captionStyle = lipgloss.NewStyle().Faint(true)
)

// TriggerView renders the trigger button sized to the widget's box.
// The selected option's icon is shown as a thumbnail before the label.
func (d *Dropdown) TriggerView(focused bool) string {
	w := d.root.Box.W
	if w < 8 {
		w = 8
	}
	inner := w - 4 // border + padding
	caret := "▾"
	if d.open && d.direction == Up {
		caret = "▴"
	}
	text := d.label
	if d.icon != "" {
		text = d.icon + " " + text
	}
	if text == "" {
		text = captionStyle.Render(d.name)
	}
	text = ansi.Truncate(text, inner-2, "…")
	pad := inner - 2 - ansi.StringWidth(text)
	if pad < 0 {
		pad = 0
	}
	body := text + strings.Repeat(" ", pad) + " " + caretStyle.Render(caret)

	st := triggerStyle
	if focused || d.open {
		st = triggerFocusStyle
	}
	return st.Width(w - 2).Render(body)
}

// PanelView renders the visible window of options. Empty when closed.
func (d *Dropdown) PanelView() string {
	if !d.open {
		return ""
	}
	w := d.panel.Box.W
	if w <= 0 {
		w = d.root.Box.W
	}
	if w < 8 {
		w = 8
	}
	inner := w - 2
	rows := d.visibleRows()
	lines := make([]string, 0, rows)
	for i := d.offset; i < d.offset+rows && i < len(d.options); i++ {
		o := d.options[i]
		tick := "  "
		if o.Selected {
			tick = tickStyle.Render("✓ ")
		}
		label := o.Label
		if o.Icon != "" {
			label = o.Icon + " " + label
		}
		label = ansi.Truncate(label, inner-2, "…")
		label += strings.Repeat(" ", max(0, inner-2-ansi.StringWidth(label)))
		st := rowStyle
		if i == d.focused {
			st = rowFocus
		}
		lines = append(lines, tick+st.Render(label))
	}
	return panelStyle.Width(inner).Render(strings.Join(lines, "\n"))
}
