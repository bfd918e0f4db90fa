package state

import (
	"fmt"

	"snippetkit/internal/catalog"
	"snippetkit/internal/config"
	"snippetkit/internal/lang"
	"snippetkit/internal/render"
	"snippetkit/internal/tui/dropdown"
)

// FromConfig seeds the panel from user settings. Theme and Language may name
// catalog entries by label; a theme that is not in the catalog is taken as a
// raw CSS background.
func FromConfig(c *config.Config, cat *catalog.Catalog) UIState {
	s := UIState{
		Theme:          render.DefaultBackground,
		Font:           c.Font,
		FontSize:       c.FontSize,
		Padding:        c.Padding,
		Radius:         c.Radius,
		Dark:           c.Dark(),
		Background:     c.Background,
		WindowControls: c.WindowControls,
		MinCol:         20,
	}
	if e, ok := catalog.Find(cat.Themes, c.Theme); ok {
		s.Theme, s.ThemeLabel = e.Value, e.Label
	} else if c.Theme != "" {
		s.Theme, s.ThemeLabel = c.Theme, c.Theme
	}
	if c.Language != "" {
		s.Language = resolveLanguage(c.Language, c.Language)
	}
	return s
}

// ToggleMode switches between CMD and INSERT modes and sets a brief notice.
func ToggleMode(s UIState) UIState {
	if s.Mode == CMD {
		s.Mode = INSERT
		s.Notice = "[INSERT]"
	} else {
		s.Mode = CMD
		s.Notice = "[CMD]"
	}
	return s
}

// ToggleView switches between Unified and SideBySide change views.
func ToggleView(s UIState) UIState {
	if s.View == Unified {
		s.View = SideBySide
	} else {
		s.View = Unified
	}
	return s
}

// Resize updates the terminal size and falls back to the unified view when
// too narrow for two columns. Threshold: 2*MinCol plus 3 separator cells.
func Resize(s UIState, width, height int) UIState {
	s.Width, s.Height = width, height
	threshold := 2*s.MinCol + 3
	if s.View == SideBySide && s.Width < threshold {
		s.View = Unified
		s.Notice = "Narrow width: using unified view"
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// SetPadding sets the panel padding, clamped to the slider range.
func SetPadding(s UIState, v int) UIState {
	s.Padding = clamp(v, config.PaddingMin, config.PaddingMax)
	return s
}

// SetRadius sets the window corner radius, clamped to the slider range.
func SetRadius(s UIState, v int) UIState {
	s.Radius = clamp(v, config.RadiusMin, config.RadiusMax)
	return s
}

// SetFontSize sets the code font size, clamped to the slider range.
func SetFontSize(s UIState, v int) UIState {
	s.FontSize = clamp(v, config.FontSizeMin, config.FontSizeMax)
	return s
}

// ToggleDark flips light/dark mode.
func ToggleDark(s UIState) UIState {
	s.Dark = !s.Dark
	if s.Dark {
		s.Notice = "Dark mode"
	} else {
		s.Notice = "Light mode"
	}
	return s
}

// ToggleBackground shows or hides the background layer.
func ToggleBackground(s UIState) UIState {
	s.Background = !s.Background
	if s.Background {
		s.Notice = "Background on"
	} else {
		s.Notice = "Background off"
	}
	return s
}

// ToggleControls shows or hides the window buttons.
func ToggleControls(s UIState) UIState {
	s.WindowControls = !s.WindowControls
	return s
}

// SetTitle sets the window title, which also names exported files.
func SetTitle(s UIState, title string) UIState {
	s.Title = title
	return s
}

// ApplyChange folds a dropdown selection into the panel. Themes set the
// background verbatim; fonts use the value or else the label; languages
// resolve to a tag, and the empty value returns to detection.
func ApplyChange(s UIState, c dropdown.Change) UIState {
	switch c.Widget {
	case catalog.Themes:
		s.Theme, s.ThemeLabel = c.Value, c.Label
	case catalog.Fonts:
		s.Font = c.Value
		if s.Font == "" {
			s.Font = c.Label
		}
	case catalog.Languages:
		s.Language = resolveLanguage(c.Value, c.Label)
	}
	return s
}

func resolveLanguage(value, label string) string {
	if value == "" {
		return ""
	}
	if tag := lang.Resolve(value); tag != "" {
		return tag
	}
	if tag := lang.Resolve(label); tag != "" {
		return tag
	}
	return value
}

// Detect re-runs the sniffer on code. It only runs when no explicit language
// is set; the previous guess is kept otherwise.
func Detect(s UIState, code string) UIState {
	if s.Language == "" {
		s.Detected = lang.Detect(code)
	}
	return s
}

// Tag is the grammar currently in effect.
func Tag(s UIState) string {
	if s.Language != "" {
		return s.Language
	}
	return s.Detected
}

// LanguageLabel describes the grammar for the status line.
func LanguageLabel(s UIState) string {
	switch {
	case s.Language != "":
		return s.Language
	case s.Detected != "":
		return fmt.Sprintf("auto: %s", s.Detected)
	}
	return "auto: plain"
}

// Scene builds the render input for code.
func Scene(s UIState, code string) render.Scene {
	return render.Scene{
		Code:           code,
		Language:       Tag(s),
		Title:          s.Title,
		Background:     s.Theme,
		Font:           s.Font,
		FontSize:       s.FontSize,
		Padding:        s.Padding,
		Radius:         s.Radius,
		Dark:           s.Dark,
		ShowBackground: s.Background,
		WindowControls: s.WindowControls,
	}
}
