// Package catalog holds the theme, language and font collections that feed
// the pickers. Built-in data is embedded; a user directory may override any
// of the three files.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"snippetkit/internal/tui/dropdown"
)

//go:embed data/*.json
var builtin embed.FS

// Collection names, also used as file stems and dropdown names.
const (
	Themes    = "themes"
	Languages = "languages"
	Fonts     = "fonts"
)

// Entry is one normalized record.
type Entry struct {
	Label string
	Value string
	Icon  string
}

// Catalog is the three collections after field fallbacks were applied.
type Catalog struct {
	Themes    []Entry
	Languages []Entry
	Fonts     []Entry
}

type themeRecord struct {
	Label    string `json:"label" yaml:"label"`
	Gradient string `json:"gradient" yaml:"gradient"`
	Value    string `json:"value" yaml:"value"`
	CSS      string `json:"css" yaml:"css"`
	Icon     string `json:"icon" yaml:"icon"`
	Img      string `json:"img" yaml:"img"`
}

type languageRecord struct {
	Label      string `json:"label" yaml:"label"`
	PrismClass string `json:"prismClass" yaml:"prismClass"`
	Value      string `json:"value" yaml:"value"`
	ID         string `json:"id" yaml:"id"`
	Icon       string `json:"icon" yaml:"icon"`
	Img        string `json:"img" yaml:"img"`
}

type fontRecord struct {
	Name  string `json:"name" yaml:"name"`
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (r themeRecord) entry() Entry {
	return Entry{
		Label: r.Label,
		Value: firstNonEmpty(r.Gradient, r.Value, r.CSS),
		Icon:  firstNonEmpty(r.Icon, r.Img),
	}
}

func (r languageRecord) entry() Entry {
	return Entry{
		Label: r.Label,
		Value: firstNonEmpty(r.PrismClass, r.Value, r.ID),
		Icon:  firstNonEmpty(r.Icon, r.Img),
	}
}

func (r fontRecord) entry() Entry {
	return Entry{
		Label: firstNonEmpty(r.Name, r.ID),
		Value: firstNonEmpty(r.Name, r.ID, r.Value),
	}
}

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	return Load("")
}

// Load reads the embedded catalog and replaces each collection for which dir
// holds a themes/languages/fonts file (.json, .jsonc, .yaml or .yml).
// An empty dir means built-in data only.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{}
	var err error
	if c.Themes, err = loadCollection(dir, Themes, decodeThemes); err != nil {
		return nil, err
	}
	if c.Languages, err = loadCollection(dir, Languages, decodeLanguages); err != nil {
		return nil, err
	}
	if c.Fonts, err = loadCollection(dir, Fonts, decodeFonts); err != nil {
		return nil, err
	}
	return c, nil
}

type decoder func(data []byte, yamlDoc bool) ([]Entry, error)

var overrideExts = []string{".json", ".jsonc", ".yaml", ".yml"}

func loadCollection(dir, name string, decode decoder) ([]Entry, error) {
	if dir != "" {
		for _, ext := range overrideExts {
			path := filepath.Join(dir, name+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			entries, err := decode(data, ext == ".yaml" || ext == ".yml")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			slog.Debug("catalog override", "collection", name, "path", path, "entries", len(entries))
			return entries, nil
		}
	}
	data, err := builtin.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	entries, err := decode(data, false)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	return entries, nil
}

func unmarshal(data []byte, yamlDoc bool, v any) error {
	if yamlDoc {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(jsonc.ToJSON(data), v)
}

func decodeThemes(data []byte, yamlDoc bool) ([]Entry, error) {
	var recs []themeRecord
	if err := unmarshal(data, yamlDoc, &recs); err != nil {
		return nil, fmt.Errorf("parse themes: %w", err)
	}
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.entry())
	}
	return out, nil
}

func decodeLanguages(data []byte, yamlDoc bool) ([]Entry, error) {
	var recs []languageRecord
	if err := unmarshal(data, yamlDoc, &recs); err != nil {
		return nil, fmt.Errorf("parse languages: %w", err)
	}
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.entry())
	}
	return out, nil
}

func decodeFonts(data []byte, yamlDoc bool) ([]Entry, error) {
	var recs []fontRecord
	if err := unmarshal(data, yamlDoc, &recs); err != nil {
		return nil, fmt.Errorf("parse fonts: %w", err)
	}
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.entry())
	}
	return out, nil
}

// Collection returns the named collection, or nil for an unknown name.
func (c *Catalog) Collection(name string) []Entry {
	switch name {
	case Themes:
		return c.Themes
	case Languages:
		return c.Languages
	case Fonts:
		return c.Fonts
	}
	return nil
}

// Find returns the first entry whose label or value matches key,
// case-insensitively.
func Find(entries []Entry, key string) (Entry, bool) {
	for _, e := range entries {
		if e.matches(key) {
			return e, true
		}
	}
	return Entry{}, false
}

func (e Entry) matches(key string) bool {
	return strings.EqualFold(e.Label, key) || (e.Value != "" && strings.EqualFold(e.Value, key))
}

// Options converts entries to dropdown options. The entry whose label or
// value equals selected is pre-selected; otherwise the first one is.
func Options(entries []Entry, selected string) []dropdown.Option {
	opts := make([]dropdown.Option, len(entries))
	for i, e := range entries {
		opts[i] = dropdown.Option{Value: e.Value, Label: e.Label, Icon: e.Icon}
	}
	if selected == "" {
		return opts
	}
	for i, e := range entries {
		if e.matches(selected) {
			opts[i].Selected = true
			break
		}
	}
	return opts
}
