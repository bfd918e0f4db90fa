package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Slider ranges shared by the CLI and the TUI.
const (
	PaddingMin, PaddingMax   = 16, 128
	RadiusMin, RadiusMax     = 0, 40
	FontSizeMin, FontSizeMax = 10, 32
)

// Config is the user's settings file (~/.config/snippetkit/config.jsonc).
// Theme, Font and Language name catalog entries by label; Theme may also be
// a raw CSS background.
type Config struct {
	Theme          string  `json:"theme"`
	Font           string  `json:"font"`
	Language       string  `json:"language"` // empty: detect from the code
	FontSize       int     `json:"fontSize"`
	Padding        int     `json:"padding"`
	Radius         int     `json:"radius"`
	Mode           string  `json:"mode"` // "dark" | "light"
	Background     bool    `json:"background"`
	WindowControls bool    `json:"windowControls"`
	Scale          float64 `json:"scale"`
	DarkStyle      string  `json:"darkStyle"`  // chroma style name
	LightStyle     string  `json:"lightStyle"` // chroma style name
	FontDir        string  `json:"fontDir,omitempty"`
	CatalogDir     string  `json:"catalogDir,omitempty"`
	OutputDir      string  `json:"outputDir,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Theme:          "Hyper",
		Font:           "Go Mono",
		FontSize:       14,
		Padding:        64,
		Radius:         12,
		Mode:           "dark",
		Background:     true,
		WindowControls: true,
		Scale:          1,
		DarkStyle:      "dracula",
		LightStyle:     "github",
	}
}

// Dark reports whether dark mode is selected.
func (c *Config) Dark() bool { return c.Mode != "light" }

// DefaultPath is config.jsonc under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "snippetkit", "config.jsonc"), nil
}

// DataDir is where fetched fonts live by default.
func DataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "snippetkit")
	}
	return filepath.Join(os.TempDir(), "snippetkit")
}

// Load reads path over the defaults. A missing file is not an error.
// Comments and trailing commas are allowed.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	check := func(name string, v, lo, hi int) {
		if v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%s %d out of range [%d, %d]", name, v, lo, hi))
		}
	}
	check("fontSize", c.FontSize, FontSizeMin, FontSizeMax)
	check("padding", c.Padding, PaddingMin, PaddingMax)
	check("radius", c.Radius, RadiusMin, RadiusMax)
	if c.Mode != "dark" && c.Mode != "light" {
		errs = append(errs, fmt.Errorf("mode must be \"dark\" or \"light\", got %q", c.Mode))
	}
	if c.Scale <= 0 || c.Scale > 8 {
		errs = append(errs, fmt.Errorf("scale %g out of range (0, 8]", c.Scale))
	}
	return errors.Join(errs...)
}

// Clone returns an independent copy.
func Clone(c *Config) *Config {
	out := *c
	return &out
}

const header = "// snippetkit settings. Comments and trailing commas are allowed.\n"

// Save writes c as indented JSON with a comment header, creating parent
// directories.
func Save(path string, c *Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, append([]byte(header), append(data, '\n')...), 0o644)
}
