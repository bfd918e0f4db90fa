package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, c.Themes)
	require.NotEmpty(t, c.Languages)
	require.NotEmpty(t, c.Fonts)

	lime, ok := Find(c.Themes, "lime")
	require.True(t, ok)
	assert.Equal(t, "rgb(190, 242, 100)", lime.Value, "css is the last theme fallback")

	goLang, ok := Find(c.Languages, "Go")
	require.True(t, ok)
	assert.Equal(t, "language-go", goLang.Value)

	plain, ok := Find(c.Languages, "Plain Text")
	require.True(t, ok)
	assert.Equal(t, "plaintext", plain.Value)

	inc, ok := Find(c.Fonts, "inconsolata")
	require.True(t, ok)
	assert.Equal(t, "Inconsolata", inc.Label, "font label falls back to id")
	assert.Equal(t, "Inconsolata", inc.Value)
}

func TestFieldFallbacks(t *testing.T) {
	th := themeRecord{Label: "x", Value: "#fff", CSS: "red", Img: "img.png"}.entry()
	assert.Equal(t, "#fff", th.Value)
	assert.Equal(t, "img.png", th.Icon)

	th = themeRecord{Label: "x", Gradient: "linear-gradient(red, blue)", Value: "#fff", Icon: "◆", Img: "i"}.entry()
	assert.Equal(t, "linear-gradient(red, blue)", th.Value)
	assert.Equal(t, "◆", th.Icon)

	l := languageRecord{Label: "Py", Value: "python", ID: "py"}.entry()
	assert.Equal(t, "python", l.Value)

	f := fontRecord{ID: "mono", Value: "Mono Value"}.entry()
	assert.Equal(t, "mono", f.Label)
	assert.Equal(t, "mono", f.Value)
	f = fontRecord{Value: "Only Value"}.entry()
	assert.Equal(t, "", f.Label)
	assert.Equal(t, "Only Value", f.Value)
}

func TestOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	jsoncThemes := `[
  // comment
  {"label": "Mine", "gradient": "linear-gradient(90deg, #000, #fff)",},
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes.jsonc"), []byte(jsoncThemes), 0o644))
	yamlFonts := "- name: Hack\n- id: Iosevka\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fonts.yaml"), []byte(yamlFonts), 0o644))

	c, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, c.Themes, 1)
	assert.Equal(t, Entry{Label: "Mine", Value: "linear-gradient(90deg, #000, #fff)"}, c.Themes[0])
	assert.Equal(t, []Entry{{Label: "Hack", Value: "Hack"}, {Label: "Iosevka", Value: "Iosevka"}}, c.Fonts)

	builtin, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, builtin.Languages, c.Languages, "collections without an override stay built-in")
}

func TestOverrideParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "languages.json"), []byte("{not json"), 0o644))
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "languages.json")
}

func TestOptions(t *testing.T) {
	entries := []Entry{{Label: "A", Value: "a"}, {Label: "B", Value: "b", Icon: "◆"}}
	opts := Options(entries, "b")
	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
	assert.Equal(t, "◆", opts[1].Icon)

	opts = Options(entries, "")
	assert.False(t, opts[0].Selected)
	assert.False(t, opts[1].Selected)
}

func TestOptionsMatchValuesLikeFind(t *testing.T) {
	entries := []Entry{
		{Label: "Plain", Value: "#000000"},
		{Label: "Hyper", Value: "linear-gradient(140deg, #F4AC8A 0%, #E84393 100%)"},
	}
	key := "LINEAR-GRADIENT(140deg, #f4ac8a 0%, #e84393 100%)"
	found, ok := Find(entries, key)
	require.True(t, ok)
	opts := Options(entries, key)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
	assert.Equal(t, found.Value, opts[1].Value)
}

func TestCollection(t *testing.T) {
	c := &Catalog{Fonts: []Entry{{Label: "x"}}}
	assert.Len(t, c.Collection(Fonts), 1)
	assert.Nil(t, c.Collection("nope"))
}
