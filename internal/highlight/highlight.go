// Package highlight turns code into lines of coloured spans with chroma.
// The same spans drive the terminal preview and both image exporters.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
)

// Default chroma style names.
const (
	DefaultDark  = "dracula"
	DefaultLight = "github"
)

// TabWidth is the column width tabs expand to.
const TabWidth = 4

// Span is a run of text sharing one style. Color is "#rrggbb" or empty.
type Span struct {
	Text      string
	Color     string
	Bold      bool
	Italic    bool
	Underline bool
}

// Line is one source line.
type Line []Span

// Width is the line's display width in cells.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// Result is a highlighted document.
type Result struct {
	Lines      []Line
	Lexer      string
	Style      string
	Foreground string
	Background string
}

// Columns is the widest line in cells.
func (r Result) Columns() int {
	w := 0
	for _, l := range r.Lines {
		w = max(w, l.Width())
	}
	return w
}

// Highlighter picks a chroma style by mode.
type Highlighter struct {
	Dark  string
	Light string
}

// New returns a highlighter; empty names fall back to the defaults.
func New(dark, light string) *Highlighter {
	if dark == "" {
		dark = DefaultDark
	}
	if light == "" {
		light = DefaultLight
	}
	return &Highlighter{Dark: dark, Light: light}
}

// StyleName is the chroma style used for the given mode.
func (h *Highlighter) StyleName(dark bool) string {
	if dark {
		return h.Dark
	}
	return h.Light
}

// Style resolves the chroma style for the mode. Unknown names yield chroma's
// fallback style.
func (h *Highlighter) Style(dark bool) *chroma.Style {
	return styles.Get(h.StyleName(dark))
}

// Lexer returns the coalesced lexer for tag, or plaintext.
func Lexer(tag string) chroma.Lexer {
	var l chroma.Lexer
	if tag != "" {
		l = lexers.Get(tag)
	}
	if l == nil {
		l = lexers.Get("plaintext")
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// Highlight tokenizes code as tag and styles it for the given mode.
func (h *Highlighter) Highlight(code, tag string, dark bool) (Result, error) {
	lexer := Lexer(tag)
	style := h.Style(dark)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return Result{}, fmt.Errorf("tokenise %s: %w", lexer.Config().Name, err)
	}

	bg := style.Get(chroma.Background)
	res := Result{
		Lexer: lexer.Config().Name,
		Style: style.Name,
	}
	if bg.Colour.IsSet() {
		res.Foreground = bg.Colour.String()
	}
	if bg.Background.IsSet() {
		res.Background = bg.Background.String()
	}

	for _, toks := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var line Line
		col := 0
		for _, tok := range toks {
			text := strings.TrimRight(tok.Value, "\r\n")
			if text == "" {
				continue
			}
			text, col = expandTabs(text, col)
			e := style.Get(tok.Type)
			sp := Span{
				Text:      text,
				Bold:      e.Bold == chroma.Yes,
				Italic:    e.Italic == chroma.Yes,
				Underline: e.Underline == chroma.Yes,
			}
			if e.Colour.IsSet() {
				sp.Color = e.Colour.String()
			}
			line = append(line, sp)
		}
		res.Lines = append(res.Lines, line)
	}
	// lexers may append a newline; keep exactly one Line per source line
	n := strings.Count(strings.ReplaceAll(code, "\r\n", "\n"), "\n") + 1
	for len(res.Lines) < n {
		res.Lines = append(res.Lines, nil)
	}
	res.Lines = res.Lines[:n]
	return res, nil
}

// expandTabs replaces tabs with spaces up to the next tab stop, starting at
// column col, and returns the new column.
func expandTabs(s string, col int) (string, int) {
	if !strings.Contains(s, "\t") {
		return s, col + runewidth.StringWidth(s)
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			n := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String(), col
}

// PlainLines splits code into lines with tabs expanded.
func PlainLines(code string) []string {
	raw := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i], _ = expandTabs(l, 0)
	}
	return out
}
