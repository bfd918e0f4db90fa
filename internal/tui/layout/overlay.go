package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place paints fg over bg with fg's top-left cell at (x, y).
// Both strings may carry ANSI styling; widths are measured in cells.
// bg grows with blank lines/columns when fg extends past it.
func Place(bg, fg string, x, y int) string {
	if fg == "" {
		return bg
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}
	for i, fl := range fgLines {
		row := y + i
		line := bgLines[row]
		w := ansi.StringWidth(line)
		if w < x {
			line += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(fl), "")
		bgLines[row] = left + fl + right
	}
	return strings.Join(bgLines, "\n")
}

// Clip cuts the rendered block s (drawn at r) down to the visible rect v and
// returns the clipped block together with its new origin. An empty block
// means nothing is visible.
func Clip(s string, r, v Rect) (string, Point) {
	vis := r.Intersect(v)
	if vis.Empty() {
		return "", Point{}
	}
	lines := strings.Split(s, "\n")
	top := vis.Y - r.Y
	bottom := top + vis.H
	if bottom > len(lines) {
		bottom = len(lines)
	}
	if top >= bottom {
		return "", Point{}
	}
	left := vis.X - r.X
	out := make([]string, 0, bottom-top)
	for _, l := range lines[top:bottom] {
		l = ansi.TruncateLeft(l, left, "")
		out = append(out, ansi.Truncate(l, vis.W, ""))
	}
	return strings.Join(out, "\n"), Point{X: vis.X, Y: vis.Y}
}
