// Package render rasterizes a code panel to PNG and SVG.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyScene is returned for a scene without code.
var ErrEmptyScene = errors.New("nothing to render: code is empty")

// Default scene values, matching the picker defaults.
const (
	DefaultBackground = "linear-gradient(140deg, #f4ac8a 0%, #e84393 50%, #6c5ce7 100%)"
	DefaultFontSize   = 14
	DefaultPadding    = 64
	DefaultRadius     = 12
)

// Scene is everything that determines how a panel looks.
type Scene struct {
	Code           string `json:"code"`
	Language       string `json:"language"`
	Title          string `json:"title"`
	Background     string `json:"background"`
	Font           string `json:"font"`
	FontSize       int    `json:"fontSize"`
	Padding        int    `json:"padding"`
	Radius         int    `json:"radius"`
	Dark           bool   `json:"dark"`
	ShowBackground bool   `json:"showBackground"`
	WindowControls bool   `json:"windowControls"`
}

// DefaultScene returns a scene with every visual field set.
func DefaultScene() Scene {
	return Scene{
		Background:     DefaultBackground,
		FontSize:       DefaultFontSize,
		Padding:        DefaultPadding,
		Radius:         DefaultRadius,
		Dark:           true,
		ShowBackground: true,
		WindowControls: true,
	}
}

// Validate rejects scenes that cannot be drawn.
func (s Scene) Validate() error {
	if strings.TrimSpace(s.Code) == "" {
		return ErrEmptyScene
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", s.FontSize)
	}
	if s.Padding < 0 || s.Radius < 0 {
		return fmt.Errorf("padding and radius must not be negative")
	}
	if s.ShowBackground {
		if _, err := ParseBackground(s.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	return nil
}

// Options tune a single render call.
type Options struct {
	// Scale multiplies every dimension; 0 means 1.
	Scale float64
	// NoCache renders fresh and leaves the cache untouched.
	NoCache bool
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Window chrome constants, in unscaled pixels.
const (
	barHeight    = 40.0
	codeInset    = 16.0
	controlR     = 6.0
	controlGap   = 20.0
	minWinWidth  = 240.0
	shadowOffset = 12.0
	shadowBlur   = 18.0
	shadowAlpha  = 0.45
)

// ControlColors are the close, minimize and zoom button fills.
var ControlColors = [3]string{"#ff5f56", "#ffbd2e", "#27c93f"}

// geometry is the computed panel layout in output pixels.
type geometry struct {
	W, H          float64
	WinX, WinY    float64
	WinW, WinH    float64
	Bar           float64
	CodeX, CodeY  float64
	Radius, Scale float64
}

// layout places the window for a code block of codeW x codeH pixels and a
// title titleW pixels wide. All inputs are already scaled.
func layout(s Scene, scale, codeW, codeH, titleW float64) geometry {
	g := geometry{Scale: scale, Radius: float64(s.Radius) * scale}
	inset := codeInset * scale
	if s.WindowControls || s.Title != "" {
		g.Bar = barHeight * scale
	}
	g.WinW = max(codeW+2*inset, titleW+2*(inset+3*controlGap*scale), minWinWidth*scale)
	g.WinH = g.Bar + codeH + 2*inset
	pad := float64(s.Padding) * scale
	g.WinX, g.WinY = pad, pad
	g.W = g.WinW + 2*pad
	g.H = g.WinH + 2*pad
	g.CodeX = g.WinX + inset
	g.CodeY = g.WinY + g.Bar + inset
	if g.Bar == 0 {
		g.CodeY = g.WinY + inset
	}
	return g
}

func (g geometry) controls() [3][2]float64 {
	var out [3][2]float64
	for i := range out {
		out[i] = [2]float64{
			g.WinX + codeInset*g.Scale + controlR*g.Scale + float64(i)*controlGap*g.Scale,
			g.WinY + g.Bar/2,
		}
	}
	return out
}

// WindowColors returns the window fill and default text colour for a chroma
// background/foreground pair, falling back per mode.
func WindowColors(dark bool, bg, fg string) (string, string) {
	if bg == "" {
		bg = "#ffffff"
		if dark {
			bg = "#1e1e2e"
		}
	}
	if fg == "" {
		fg = "#24292e"
		if dark {
			fg = "#f8f8f2"
		}
	}
	return bg, fg
}
