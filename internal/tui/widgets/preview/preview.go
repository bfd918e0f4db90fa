// Package preview draws the panel in the terminal: the highlighted code in a
// window with traffic-light controls, floating on the theme background.
// One cell stands for 8x16 px of the exported image.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"snippetkit/internal/highlight"
	"snippetkit/internal/render"
	"snippetkit/internal/tui/util"
)

const (
	cellW = 8
	cellH = 16
)

// Options describe the panel being previewed and the space it gets.
type Options struct {
	Width, Height  int
	Padding        int // px
	Radius         int // px
	Title          string
	Controls       bool
	ShowBackground bool
	Background     string // CSS
	Dark           bool
}

// Preview caches the background grid between frames.
type Preview struct {
	key  string
	grid [][]string // hex per cell; "" is transparent
}

// View renders res under o.
func (p *Preview) View(res highlight.Result, o Options) string {
	winBG, winFG := render.WindowColors(o.Dark, res.Background, res.Foreground)

	padX := max(1, o.Padding/cellW)
	padY := max(1, o.Padding/cellH)
	bar := 0
	if o.Controls || o.Title != "" {
		bar = 1
	}
	titleW := runewidth.StringWidth(o.Title)
	innerW := max(res.Columns(), titleW+12, 20) + 2
	if o.Width > 0 {
		if innerW+2*padX > o.Width {
			padX = max(1, (o.Width-innerW)/2)
		}
		innerW = min(innerW, max(4, o.Width-2*padX))
	}

	lines := res.Lines
	more := false
	if o.Height > 0 {
		room := o.Height - 2*padY - bar - 2
		if room < len(lines) && padY > 1 {
			padY = 1
			room = o.Height - 2 - bar - 2
		}
		room = max(1, room)
		if len(lines) > room {
			lines, more = lines[:room-1], true
		}
	}

	winRows := make([]string, 0, len(lines)+bar+2)
	if bar == 1 {
		winRows = append(winRows, barRow(o, innerW, winBG, winFG))
	}
	blank := lipgloss.NewStyle().Background(lipgloss.Color(winBG)).Render(strings.Repeat(" ", innerW))
	winRows = append(winRows, blank)
	for _, l := range lines {
		winRows = append(winRows, codeRow(l, innerW, winBG, winFG))
	}
	if more {
		dim := lipgloss.NewStyle().Background(lipgloss.Color(winBG)).Foreground(util.Fade(winFG, winBG, 0.5))
		winRows = append(winRows, dim.Render(pad(" …", innerW)))
	}
	winRows = append(winRows, blank)

	totalW := innerW + 2*padX
	totalH := len(winRows) + 2*padY
	grid := p.background(o, totalW, totalH)

	out := make([]string, 0, totalH)
	for y := 0; y < totalH; y++ {
		wy := y - padY
		if wy < 0 || wy >= len(winRows) {
			out = append(out, cells(grid[y], 0, totalW))
			continue
		}
		row := winRows[wy]
		left, right := cells(grid[y], 0, padX), cells(grid[y], padX+innerW, totalW)
		if o.Radius > 0 && (wy == 0 || wy == len(winRows)-1) {
			// cut the corners so the window reads as rounded
			row = cells(grid[y], padX, padX+1) +
				ansi.Cut(row, 1, innerW-1) +
				cells(grid[y], padX+innerW-1, padX+innerW)
		}
		out = append(out, left+row+right)
	}
	return strings.Join(out, "\n")
}

func pad(s string, w int) string {
	s = ansi.Truncate(s, w, "")
	return s + strings.Repeat(" ", max(0, w-ansi.StringWidth(s)))
}

func barRow(o Options, w int, bg, fg string) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg))
	var left strings.Builder
	left.WriteString(base.Render(" "))
	lw := 1
	if o.Controls {
		for _, c := range render.ControlColors {
			left.WriteString(base.Foreground(lipgloss.Color(c)).Render("●"))
			left.WriteString(base.Render(" "))
			lw += 2
		}
	}
	title := ansi.Truncate(o.Title, max(0, w-2*lw), "…")
	tw := ansi.StringWidth(title)
	before := max(0, (w-tw)/2-lw)
	after := max(0, w-lw-before-tw)
	return left.String() +
		base.Render(strings.Repeat(" ", before)) +
		base.Foreground(util.Fade(fg, bg, 0.4)).Render(title) +
		base.Render(strings.Repeat(" ", after))
}

func codeRow(l highlight.Line, w int, bg, fg string) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg))
	var b strings.Builder
	b.WriteString(base.Render(" "))
	room := w - 2
	for _, sp := range l {
		if room <= 0 {
			break
		}
		text := sp.Text
		if runewidth.StringWidth(text) > room {
			text = runewidth.Truncate(text, room, "")
		}
		room -= runewidth.StringWidth(text)
		color := sp.Color
		if color == "" {
			color = fg
		}
		st := base.Foreground(lipgloss.Color(color)).Bold(sp.Bold).Italic(sp.Italic).Underline(sp.Underline)
		b.WriteString(st.Render(text))
	}
	b.WriteString(base.Render(strings.Repeat(" ", room+1)))
	return b.String()
}

// background returns the colour grid for a w x h panel, reusing the last one
// when nothing changed.
func (p *Preview) background(o Options, w, h int) [][]string {
	key := fmt.Sprintf("%dx%d|%t|%s", w, h, o.ShowBackground, o.Background)
	if key == p.key && p.grid != nil {
		return p.grid
	}
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
	}
	bg, err := render.ParseBackground(o.Background)
	if o.ShowBackground && err == nil && len(bg.Stops) > 0 {
		fw, fh := float64(w*cellW), float64(h*cellH)
		x0, y0, x1, y1 := bg.Line(fw, fh)
		dx, dy := x1-x0, y1-y0
		l2 := dx*dx + dy*dy
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t := 0.0
				if l2 > 0 {
					px, py := (float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH
					t = ((px-x0)*dx + (py-y0)*dy) / l2
				}
				c, _ := bg.ColorAt(t)
				grid[y][x] = c.Clamped().Hex()
			}
		}
	}
	p.key, p.grid = key, grid
	return grid
}

// cells renders row[from:to] as background-coloured blanks, merging runs of
// one colour.
func cells(row []string, from, to int) string {
	var b strings.Builder
	for x := from; x < to; {
		end := x + 1
		for end < to && row[end] == row[x] {
			end++
		}
		blank := strings.Repeat(" ", end-x)
		if row[x] == "" {
			b.WriteString(blank)
		} else {
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(row[x])).Render(blank))
		}
		x = end
	}
	return b.String()
}
