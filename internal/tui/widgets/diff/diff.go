package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"snippetkit/internal/tui/state"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	diffAddChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint       = lipgloss.NewStyle().Faint(true)
	headStyle   = lipgloss.NewStyle().Bold(true)
)

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders the changes between the starting buffer and the current one.
// SideBySide aligns two columns with a vertical separator; Unified prefixes
// lines with +/- markers. Paired changed lines get character highlights.
func (DiffView) View(s state.UIState, before, after string) string {
	if before == after {
		return "No changes\n"
	}
	rows := align(before, after)
	if s.View == state.SideBySide {
		return sideBySide(rows, s.Width)
	}
	return unified(rows)
}

// row is one aligned line pair. A missing side is nil.
type row struct {
	del, add *string
}

// align diffs line-wise and pairs deleted runs with the inserted run that
// follows them.
func align(before, after string) []row {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var out []row
	var dels []string
	flush := func(adds []string) {
		n := max(len(dels), len(adds))
		for i := 0; i < n; i++ {
			var r row
			if i < len(dels) {
				r.del = &dels[i]
			}
			if i < len(adds) {
				r.add = &adds[i]
			}
			out = append(out, r)
		}
		dels = nil
	}
	for _, df := range diffs {
		ls := splitLines(df.Text)
		switch df.Type {
		case dmp.DiffDelete:
			dels = append(dels, ls...)
		case dmp.DiffInsert:
			flush(ls)
		case dmp.DiffEqual:
			flush(nil)
			for i := range ls {
				out = append(out, row{del: &ls[i], add: &ls[i]})
			}
		}
	}
	flush(nil)
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// charSpans renders the two sides of a changed pair with character level
// highlights.
func charSpans(bl, al string) (string, string) {
	d := dmp.New()
	diffs := d.DiffMain(bl, al, false)
	d.DiffCleanupSemantic(diffs)
	var lbuf, rbuf strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			lbuf.WriteString(diffDelChar.Render(df.Text))
		case dmp.DiffInsert:
			rbuf.WriteString(diffAddChar.Render(df.Text))
		case dmp.DiffEqual:
			lbuf.WriteString(diffDelLine.Render(df.Text))
			rbuf.WriteString(diffAddLine.Render(df.Text))
		}
	}
	return lbuf.String(), rbuf.String()
}

func unified(rows []row) string {
	var sb strings.Builder
	sb.WriteString(headStyle.Render("ORIGINAL vs CURRENT (Unified)") + "\n")
	for _, r := range rows {
		switch {
		case r.del != nil && r.add != nil && *r.del == *r.add:
			if strings.TrimSpace(*r.del) == "" {
				continue
			}
			sb.WriteString("  " + faint.Render(*r.del) + "\n")
		case r.del != nil && r.add != nil:
			l, a := charSpans(*r.del, *r.add)
			sb.WriteString(diffDelLine.Render("- ") + l + "\n")
			sb.WriteString(diffAddLine.Render("+ ") + a + "\n")
		case r.del != nil:
			sb.WriteString(diffDelLine.Render("- "+*r.del) + "\n")
		case r.add != nil:
			sb.WriteString(diffAddLine.Render("+ "+*r.add) + "\n")
		}
	}
	return sb.String()
}

func sideBySide(rows []row, width int) string {
	const sep = " │ "
	colWidth := 40
	if width > 0 {
		colWidth = max(10, (width-len(sep))/2)
	}
	pad := func(s string) string {
		s = ansi.Truncate(s, colWidth, "…")
		return s + strings.Repeat(" ", max(0, colWidth-ansi.StringWidth(s)))
	}
	var sb strings.Builder
	sb.WriteString(pad(headStyle.Render("ORIGINAL")) + sep + headStyle.Render("CURRENT") + "\n")
	for _, r := range rows {
		var left, right string
		switch {
		case r.del != nil && r.add != nil && *r.del == *r.add:
			left, right = faint.Render("  "+*r.del), faint.Render("  "+*r.add)
		case r.del != nil && r.add != nil:
			l, a := charSpans(*r.del, *r.add)
			left, right = diffDelLine.Render("- ")+l, diffAddLine.Render("+ ")+a
		case r.del != nil:
			left = diffDelLine.Render("- " + *r.del)
		case r.add != nil:
			right = diffAddLine.Render("+ " + *r.add)
		}
		sb.WriteString(pad(left) + sep + ansi.Truncate(right, colWidth, "…") + "\n")
	}
	return sb.String()
}
