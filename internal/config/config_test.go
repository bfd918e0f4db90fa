package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.True(t, c.Dark())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.jsonc"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	src := `{
  // light panels for the docs site
  "mode": "light",
  "padding": 32,
  "font": "Fira Code", /* fetched */
}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.False(t, c.Dark())
	assert.Equal(t, 32, c.Padding)
	assert.Equal(t, "Fira Code", c.Font)
	assert.Equal(t, 14, c.FontSize, "unset keys keep defaults")
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"padding": 500, "mode": "sepia"}`), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padding 500")
	assert.Contains(t, err.Error(), "sepia")
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"padding": }`), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.jsonc")
	c := Default()
	c.Radius = 0
	c.OutputDir = "/tmp/shots"
	require.NoError(t, Save(path, c))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "// snippetkit settings")

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestClone(t *testing.T) {
	c := Default()
	d := Clone(c)
	d.Theme = "Other"
	assert.Equal(t, "Hyper", c.Theme)
}
