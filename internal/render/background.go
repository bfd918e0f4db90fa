package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Stop is one gradient colour stop. Offset is in [0,1].
type Stop struct {
	Color  colorful.Color
	Alpha  float64
	Offset float64
}

// Background is a parsed panel background: a single stop for solid colours,
// or a linear gradient running at Angle degrees (CSS convention: 0 points up,
// clockwise).
type Background struct {
	Angle float64
	Stops []Stop
}

// Solid reports whether the background is a single colour.
func (b Background) Solid() bool { return len(b.Stops) == 1 }

var sideAngles = map[string]float64{
	"to top":          0,
	"to top right":    45,
	"to right top":    45,
	"to right":        90,
	"to bottom right": 135,
	"to right bottom": 135,
	"to bottom":       180,
	"to bottom left":  225,
	"to left bottom":  225,
	"to left":         270,
	"to top left":     315,
	"to left top":     315,
}

// ParseBackground understands hex colours, rgb()/rgba(), CSS colour names,
// "transparent" and linear-gradient() with a deg angle or a "to <side>".
func ParseBackground(css string) (Background, error) {
	s := strings.ToLower(strings.TrimSpace(css))
	s = strings.TrimSuffix(s, ";")
	if s == "" {
		return Background{}, fmt.Errorf("empty background")
	}
	if !strings.HasPrefix(s, "linear-gradient(") {
		c, a, err := parseColor(s)
		if err != nil {
			return Background{}, err
		}
		return Background{Angle: 180, Stops: []Stop{{Color: c, Alpha: a}}}, nil
	}
	if !strings.HasSuffix(s, ")") {
		return Background{}, fmt.Errorf("unterminated gradient %q", css)
	}
	parts := splitTopLevel(s[len("linear-gradient(") : len(s)-1])
	bg := Background{Angle: 180}
	if len(parts) > 0 {
		first := parts[0]
		if strings.HasSuffix(first, "deg") {
			v, err := strconv.ParseFloat(strings.TrimSuffix(first, "deg"), 64)
			if err != nil {
				return Background{}, fmt.Errorf("gradient angle %q: %w", first, err)
			}
			bg.Angle = v
			parts = parts[1:]
		} else if strings.HasPrefix(first, "to ") {
			a, ok := sideAngles[strings.Join(strings.Fields(first), " ")]
			if !ok {
				return Background{}, fmt.Errorf("gradient direction %q", first)
			}
			bg.Angle = a
			parts = parts[1:]
		}
	}
	if len(parts) < 2 {
		return Background{}, fmt.Errorf("gradient needs two colour stops: %q", css)
	}
	explicit := make([]bool, len(parts))
	for i, p := range parts {
		colorPart, off, has := splitStop(p)
		c, a, err := parseColor(colorPart)
		if err != nil {
			return Background{}, err
		}
		st := Stop{Color: c, Alpha: a}
		if has {
			st.Offset = off
			explicit[i] = true
		}
		bg.Stops = append(bg.Stops, st)
	}
	distribute(bg.Stops, explicit)
	return bg, nil
}

// distribute fills in missing stop offsets evenly between their explicit
// neighbours.
func distribute(stops []Stop, explicit []bool) {
	n := len(stops)
	if !explicit[0] {
		stops[0].Offset, explicit[0] = 0, true
	}
	if !explicit[n-1] {
		stops[n-1].Offset, explicit[n-1] = 1, true
	}
	prev := 0
	for i := 1; i < n; i++ {
		if !explicit[i] {
			continue
		}
		for j := prev + 1; j < i; j++ {
			t := float64(j-prev) / float64(i-prev)
			stops[j].Offset = stops[prev].Offset + t*(stops[i].Offset-stops[prev].Offset)
		}
		prev = i
	}
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// splitStop separates "<color> <pct>%" into its parts.
func splitStop(p string) (string, float64, bool) {
	i := strings.LastIndexByte(p, ' ')
	if i < 0 || strings.LastIndexByte(p, ')') > i {
		return p, 0, false
	}
	tail := p[i+1:]
	if !strings.HasSuffix(tail, "%") {
		return p, 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(tail, "%"), 64)
	if err != nil {
		return p, 0, false
	}
	return strings.TrimSpace(p[:i]), math.Max(0, math.Min(1, v/100)), true
}

func parseColor(s string) (colorful.Color, float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "transparent":
		return colorful.Color{}, 0, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	}
	if c, ok := colornames.Map[s]; ok {
		col, _ := colorful.MakeColor(c)
		return col, 1, nil
	}
	return colorful.Color{}, 0, fmt.Errorf("unknown colour %q", s)
}

func parseHex(s string) (colorful.Color, float64, error) {
	alpha := 1.0
	switch len(s) {
	case 5, 9:
		// #rgba / #rrggbbaa
		digits := s[len(s)-(len(s)-1)/4:]
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("colour %q: %w", s, err)
		}
		if len(digits) == 1 {
			v *= 17
		}
		alpha = float64(v) / 255
		s = s[:len(s)-len(digits)]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, alpha, nil
}

func parseRGB(s string) (colorful.Color, float64, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return colorful.Color{}, 0, fmt.Errorf("colour %q", s)
	}
	fields := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return colorful.Color{}, 0, fmt.Errorf("colour %q: want 3 or 4 components", s)
	}
	var ch [3]float64
	for i := range 3 {
		v, err := component(fields[i], 255)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("colour %q: %w", s, err)
		}
		ch[i] = v
	}
	alpha := 1.0
	if len(fields) == 4 {
		v, err := component(fields[3], 1)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("colour %q: %w", s, err)
		}
		alpha = v
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, alpha, nil
}

// component parses a number or percentage and normalizes it to [0,1] given
// the number's full scale.
func component(f string, scale float64) (float64, error) {
	if strings.HasSuffix(f, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return 0, err
		}
		return math.Max(0, math.Min(1, v/100)), nil
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		return 0, err
	}
	return math.Max(0, math.Min(1, v/scale)), nil
}

// ColorAt samples the gradient at t in [0,1], blending in RGB like browsers do.
func (b Background) ColorAt(t float64) (colorful.Color, float64) {
	if len(b.Stops) == 0 {
		return colorful.Color{}, 0
	}
	first, last := b.Stops[0], b.Stops[len(b.Stops)-1]
	if t <= first.Offset {
		return first.Color, first.Alpha
	}
	if t >= last.Offset {
		return last.Color, last.Alpha
	}
	for i := 1; i < len(b.Stops); i++ {
		lo, hi := b.Stops[i-1], b.Stops[i]
		if t > hi.Offset {
			continue
		}
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color, hi.Alpha
		}
		u := (t - lo.Offset) / span
		return lo.Color.BlendRgb(hi.Color, u).Clamped(), lo.Alpha + u*(hi.Alpha-lo.Alpha)
	}
	return last.Color, last.Alpha
}

// Line returns the gradient line endpoints for a w x h box, as CSS defines
// it: through the centre, long enough that the corners get the end colours.
func (b Background) Line(w, h float64) (x0, y0, x1, y1 float64) {
	rad := b.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}
