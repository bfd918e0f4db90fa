package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"snippetkit/internal/fonts"
	"snippetkit/internal/highlight"
)

// Renderer draws scenes. It is safe for concurrent use.
type Renderer struct {
	Highlighter *highlight.Highlighter
	Fonts       *fonts.Loader
	Cache       *Cache
}

// New returns a renderer with a fresh cache. A nil loader uses only the
// bundled font.
func New(h *highlight.Highlighter, fl *fonts.Loader) *Renderer {
	if h == nil {
		h = highlight.New("", "")
	}
	if fl == nil {
		fl = fonts.NewLoader("")
	}
	return &Renderer{Highlighter: h, Fonts: fl, Cache: NewCache(16)}
}

func (r *Renderer) cached(kind string, s Scene, o Options, draw func() ([]byte, error)) ([]byte, error) {
	if o.NoCache || r.Cache == nil {
		return draw()
	}
	key := Key(kind, s, o, r.Highlighter.Dark, r.Highlighter.Light, r.Fonts.Dir)
	if b, ok := r.Cache.Get(key); ok {
		slog.Debug("render cache hit", "kind", kind, "key", key[:12])
		return b, nil
	}
	b, err := draw()
	if err != nil {
		return nil, err
	}
	r.Cache.Put(key, b)
	return b, nil
}

// PNG rasterizes s.
func (r *Renderer) PNG(ctx context.Context, s Scene, o Options) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return r.cached("png", s, o, func() ([]byte, error) {
		img, err := r.Image(ctx, s, o)
		if err != nil {
			return nil, err
		}
		dc := gg.NewContextForImage(img)
		defer dc.Close()
		var buf bytes.Buffer
		if err := dc.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	})
}

// Image draws s into an in-memory image.
func (r *Renderer) Image(ctx context.Context, s Scene, o Options) (image.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	res, err := r.Highlighter.Highlight(s.Code, s.Language, s.Dark)
	if err != nil {
		return nil, err
	}
	set, err := r.Fonts.Load(s.Font)
	if err != nil {
		return nil, err
	}
	scale := o.scale()
	size := float64(s.FontSize) * scale
	regular := set.Face(size, false, false)
	m := regular.Metrics()
	lineH := size * 1.5
	charW := regular.Advance("M")
	titleW := 0.0
	if s.Title != "" {
		titleW, _ = text.Measure(s.Title, regular)
	}
	g := layout(s, scale, float64(res.Columns())*charW, float64(len(res.Lines))*lineH, titleW)
	w, h := int(g.W+0.5), int(g.H+0.5)

	var base image.Image = imaging.New(w, h, color.Transparent)
	if s.ShowBackground {
		bg, err := ParseBackground(s.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		base = paintBackground(bg, w, h)
	}
	base = imaging.Overlay(base, shadow(g, w, h), image.Pt(0, 0), 1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dc := gg.NewContextForImage(base)
	defer dc.Close()

	winBG, winFG := WindowColors(s.Dark, res.Background, res.Foreground)
	dc.SetHexColor(winBG)
	dc.DrawRoundedRectangle(g.WinX, g.WinY, g.WinW, g.WinH, g.Radius)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("fill window: %w", err)
	}

	if s.WindowControls {
		for i, c := range g.controls() {
			dc.SetHexColor(ControlColors[i])
			dc.DrawCircle(c[0], c[1], controlR*scale)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("fill control: %w", err)
			}
		}
	}
	if s.Title != "" {
		dc.SetFont(regular)
		dc.SetRGBA(faded(winFG))
		dc.DrawString(s.Title, g.WinX+(g.WinW-titleW)/2, g.WinY+g.Bar/2+(m.Ascent-m.Descent)/2)
	}

	for i, line := range res.Lines {
		if i%32 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		baseline := g.CodeY + float64(i)*lineH + (lineH+m.Ascent-m.Descent)/2
		x := g.CodeX
		for _, sp := range line {
			face := regular
			if sp.Bold || sp.Italic {
				face = set.Face(size, sp.Bold, sp.Italic)
			}
			if strings.TrimSpace(sp.Text) != "" {
				col := sp.Color
				if col == "" {
					col = winFG
				}
				dc.SetFont(face)
				dc.SetHexColor(col)
				dc.DrawString(sp.Text, x, baseline)
			}
			x += face.Advance(sp.Text)
		}
	}
	return imaging.Clone(dc.Image()), nil
}

// faded returns hex at 60% opacity, for the title.
func faded(hex string) (float64, float64, float64, float64) {
	c := gg.Hex(hex)
	return c.R, c.G, c.B, 0.6
}

func paintBackground(bg Background, w, h int) image.Image {
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if bg.Solid() {
		st := bg.Stops[0]
		r, g, b := st.Color.Clamped().RGB255()
		dc.SetRGBA(float64(r)/255, float64(g)/255, float64(b)/255, st.Alpha)
	} else {
		x0, y0, x1, y1 := bg.Line(float64(w), float64(h))
		brush := gg.NewLinearGradientBrush(x0, y0, x1, y1)
		for _, st := range bg.Stops {
			c := st.Color.Clamped()
			brush.AddColorStop(st.Offset, gg.RGBA{R: c.R, G: c.G, B: c.B, A: st.Alpha})
		}
		dc.SetFillBrush(brush)
	}
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		slog.Warn("background fill failed", "err", err)
	}
	return imaging.Clone(dc.Image())
}

// shadow is a blurred dark copy of the window shape, offset downwards.
func shadow(g geometry, w, h int) image.Image {
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.SetRGBA(0, 0, 0, shadowAlpha)
	dc.DrawRoundedRectangle(g.WinX, g.WinY+shadowOffset*g.Scale, g.WinW, g.WinH, g.Radius)
	if err := dc.Fill(); err != nil {
		slog.Warn("shadow fill failed", "err", err)
	}
	return imaging.Blur(dc.Image(), shadowBlur*g.Scale/2)
}
