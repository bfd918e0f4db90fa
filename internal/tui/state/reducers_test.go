package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippetkit/internal/catalog"
	"snippetkit/internal/config"
	"snippetkit/internal/tui/dropdown"
)

func TestToggleModeSetsNotice(t *testing.T) {
	s := UIState{Mode: CMD}
	s = ToggleMode(s)
	assert.Equal(t, INSERT, s.Mode)
	assert.Equal(t, "[INSERT]", s.Notice)
	s = ToggleMode(s)
	assert.Equal(t, CMD, s.Mode)
	assert.Equal(t, "[CMD]", s.Notice)
}

func TestToggleView(t *testing.T) {
	s := ToggleView(UIState{View: Unified})
	assert.Equal(t, SideBySide, s.View)
	assert.Equal(t, Unified, ToggleView(s).View)
}

func TestResizeFallbackToUnified(t *testing.T) {
	s := UIState{View: SideBySide, MinCol: 20}
	s = Resize(s, 30, 10) // threshold = 2*20+3 = 43
	assert.Equal(t, Unified, s.View)
	assert.NotEmpty(t, s.Notice)
	assert.Equal(t, 30, s.Width)
	assert.Equal(t, 10, s.Height)
}

func TestSlidersClamp(t *testing.T) {
	s := UIState{}
	assert.Equal(t, config.PaddingMax, SetPadding(s, 1000).Padding)
	assert.Equal(t, config.PaddingMin, SetPadding(s, 0).Padding)
	assert.Equal(t, 48, SetPadding(s, 48).Padding)
	assert.Equal(t, config.RadiusMin, SetRadius(s, -3).Radius)
	assert.Equal(t, config.RadiusMax, SetRadius(s, 99).Radius)
	assert.Equal(t, config.FontSizeMin, SetFontSize(s, 2).FontSize)
	assert.Equal(t, 18, SetFontSize(s, 18).FontSize)
}

func TestToggles(t *testing.T) {
	s := UIState{Dark: true, Background: true, WindowControls: true}
	s = ToggleDark(s)
	assert.False(t, s.Dark)
	assert.Equal(t, "Light mode", s.Notice)
	s = ToggleBackground(s)
	assert.False(t, s.Background)
	s = ToggleControls(s)
	assert.False(t, s.WindowControls)
}

func TestThemeValueIsCarriedVerbatim(t *testing.T) {
	v := "linear-gradient(90deg, #000 0%, #fff 100%)"
	s := ApplyChange(UIState{}, dropdown.Change{Widget: catalog.Themes, Value: v, Label: "Mono"})
	assert.Equal(t, v, s.Theme)
	assert.Equal(t, "Mono", s.ThemeLabel)
}

func TestFontFallsBackToLabel(t *testing.T) {
	s := ApplyChange(UIState{}, dropdown.Change{Widget: catalog.Fonts, Value: "", Label: "Fira Code"})
	assert.Equal(t, "Fira Code", s.Font)
	s = ApplyChange(s, dropdown.Change{Widget: catalog.Fonts, Value: "JetBrains Mono", Label: "JB"})
	assert.Equal(t, "JetBrains Mono", s.Font)
}

func TestLanguageChange(t *testing.T) {
	s := ApplyChange(UIState{}, dropdown.Change{Widget: catalog.Languages, Value: "language-python", Label: "Python"})
	assert.Equal(t, "python", s.Language)

	s = ApplyChange(s, dropdown.Change{Widget: catalog.Languages, Value: "js", Label: "JavaScript"})
	assert.Equal(t, "javascript", s.Language)

	s = ApplyChange(s, dropdown.Change{Widget: catalog.Languages, Value: "", Label: "Auto"})
	assert.Empty(t, s.Language, "empty value returns to detection")
}

func TestDetectOnlyWithoutExplicitLanguage(t *testing.T) {
	s := Detect(UIState{}, "def foo():\n    return 1")
	assert.Equal(t, "python", s.Detected)
	assert.Equal(t, "python", Tag(s))
	assert.Equal(t, "auto: python", LanguageLabel(s))

	s.Language = "rust"
	s = Detect(s, "#include <stdio.h>\nint main(){return 0;}")
	assert.Equal(t, "python", s.Detected, "sniffer does not run")
	assert.Equal(t, "rust", Tag(s))
	assert.Equal(t, "rust", LanguageLabel(s))

	assert.Equal(t, "auto: plain", LanguageLabel(Detect(UIState{}, "   ")))
}

func TestFromConfigAndScene(t *testing.T) {
	cat, err := catalog.Builtin()
	require.NoError(t, err)

	c := config.Default()
	c.Language = "Go"
	c.Mode = "light"
	s := FromConfig(c, cat)
	assert.Equal(t, "Hyper", s.ThemeLabel)
	assert.Contains(t, s.Theme, "linear-gradient")
	assert.Equal(t, "go", s.Language)
	assert.False(t, s.Dark)

	c.Theme = "#112233"
	s = FromConfig(c, cat)
	assert.Equal(t, "#112233", s.Theme)

	s = SetTitle(s, "main.go")
	sc := Scene(s, "package main")
	assert.Equal(t, "package main", sc.Code)
	assert.Equal(t, "go", sc.Language)
	assert.Equal(t, "main.go", sc.Title)
	assert.Equal(t, "#112233", sc.Background)
	assert.Equal(t, c.Padding, sc.Padding)
	assert.True(t, sc.ShowBackground)
	require.NoError(t, sc.Validate())
}
