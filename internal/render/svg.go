package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromasvg "github.com/alecthomas/chroma/v2/formatters/svg"

	"snippetkit/internal/highlight"
)

// XMLProlog starts every SVG document.
const XMLProlog = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// The chroma SVG formatter lays text out at a fixed 14px with 1.2em lines
// and 8px per column.
const (
	chromaFontPx  = 14.0
	chromaLineEm  = 1.2
	chromaColumn  = 8.0
	chromaPadding = 10.0
)

// SVG renders s as a standalone SVG document.
func (r *Renderer) SVG(ctx context.Context, s Scene, o Options) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return r.cached("svg", s, o, func() ([]byte, error) {
		return r.svg(ctx, s, o)
	})
}

func (r *Renderer) svg(ctx context.Context, s Scene, o Options) ([]byte, error) {
	style := r.Highlighter.Style(s.Dark)
	lexer := highlight.Lexer(s.Language)
	it, err := lexer.Tokenise(nil, s.Code)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}
	family := s.Font
	if family == "" {
		family = "monospace"
	}
	var code bytes.Buffer
	if err := chromasvg.New(chromasvg.FontFamily(family)).Format(&code, style, it); err != nil {
		return nil, fmt.Errorf("format svg: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scale := o.scale()
	k := float64(s.FontSize) / chromaFontPx * scale
	lines := highlight.PlainLines(s.Code)
	cols := 0
	for _, l := range lines {
		cols = max(cols, len([]rune(l)))
	}
	codeW := float64(cols) * chromaColumn * k
	codeH := (chromaPadding + chromaFontPx*chromaLineEm*float64(len(lines)+1)) * k
	titleW := float64(len([]rune(s.Title))) * chromaColumn * k
	g := layout(s, scale, codeW, codeH, titleW)

	bg := style.Get(chroma.Background)
	winBG, winFG := "", ""
	if bg.Background.IsSet() {
		winBG = bg.Background.String()
	}
	if bg.Colour.IsSet() {
		winFG = bg.Colour.String()
	}
	winBG, winFG = WindowColors(s.Dark, winBG, winFG)

	var b strings.Builder
	b.WriteString(XMLProlog)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(g.W), num(g.H), num(g.W), num(g.H))
	b.WriteString("<defs>\n")
	if s.ShowBackground {
		parsed, err := ParseBackground(s.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		writeGradient(&b, parsed, g.W, g.H)
	}
	fmt.Fprintf(&b, `<filter id="shadow" x="-20%%" y="-20%%" width="140%%" height="140%%"><feDropShadow dx="0" dy="%s" stdDeviation="%s" flood-color="#000" flood-opacity="%s"/></filter>`+"\n",
		num(shadowOffset*scale), num(shadowBlur*scale/2), num(shadowAlpha))
	fmt.Fprintf(&b, `<clipPath id="window"><rect x="%s" y="%s" width="%s" height="%s" rx="%s"/></clipPath>`+"\n",
		num(g.WinX), num(g.WinY), num(g.WinW), num(g.WinH), num(g.Radius))
	b.WriteString("</defs>\n")

	if s.ShowBackground {
		fmt.Fprintf(&b, `<rect class="background" width="100%%" height="100%%" fill="url(#bg)"/>`+"\n")
	}
	fmt.Fprintf(&b, `<rect class="window" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" filter="url(#shadow)"/>`+"\n",
		num(g.WinX), num(g.WinY), num(g.WinW), num(g.WinH), num(g.Radius), winBG)

	if s.WindowControls {
		for i, c := range g.controls() {
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				num(c[0]), num(c[1]), num(controlR*scale), ControlColors[i])
		}
	}
	if s.Title != "" {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" fill="%s" fill-opacity="0.6">`,
			num(g.WinX+g.WinW/2), num(g.WinY+g.Bar/2), attr(family), num(float64(s.FontSize)*scale), winFG)
		_ = xml.EscapeText(&b, []byte(s.Title))
		b.WriteString("</text>\n")
	}

	fmt.Fprintf(&b, `<g class="code" clip-path="url(#window)" transform="translate(%s %s) scale(%s)">`+"\n",
		num(g.CodeX), num(g.CodeY), num(k))
	b.WriteString(nestable(code.String()))
	b.WriteString("</g>\n</svg>\n")
	return []byte(b.String()), nil
}

func writeGradient(b *strings.Builder, bg Background, w, h float64) {
	x0, y0, x1, y1 := bg.Line(w, h)
	fmt.Fprintf(b, `<linearGradient id="bg" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
		num(x0), num(y0), num(x1), num(y1))
	stops := bg.Stops
	if bg.Solid() {
		stops = []Stop{stops[0], {Color: stops[0].Color, Alpha: stops[0].Alpha, Offset: 1}}
	}
	for _, st := range stops {
		fmt.Fprintf(b, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
			num(st.Offset), st.Color.Clamped().Hex(), num(st.Alpha))
	}
	b.WriteString("</linearGradient>\n")
}

// nestable strips the prolog and doctype from a standalone SVG document so it
// can be embedded as a child element.
func nestable(doc string) string {
	var out []string
	for _, line := range strings.Split(doc, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "<?xml") || strings.HasPrefix(t, "<!DOCTYPE") {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func attr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
