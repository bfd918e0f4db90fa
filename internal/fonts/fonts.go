// Package fonts resolves catalog font names to loaded font sources: the
// bundled Go Mono family or TrueType files in the user's font directory.
package fonts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
)

// BuiltinName is the family that is always available.
const BuiltinName = "Go Mono"

// Set is one family with its four faces. Missing variants reuse Regular.
type Set struct {
	Name       string
	Regular    *text.FontSource
	Bold       *text.FontSource
	Italic     *text.FontSource
	BoldItalic *text.FontSource
	Builtin    bool
}

// Face returns a face of the requested variant at size points.
func (s *Set) Face(size float64, bold, italic bool) text.Face {
	src := s.Regular
	switch {
	case bold && italic && s.BoldItalic != nil:
		src = s.BoldItalic
	case bold && s.Bold != nil:
		src = s.Bold
	case italic && s.Italic != nil:
		src = s.Italic
	}
	return src.Face(size)
}

var (
	builtinOnce sync.Once
	builtinSet  *Set
	builtinErr  error
)

// Builtin returns the bundled Go Mono family.
func Builtin() (*Set, error) {
	builtinOnce.Do(func() {
		s := &Set{Name: BuiltinName, Builtin: true}
		for _, v := range []struct {
			dst  **text.FontSource
			data []byte
		}{
			{&s.Regular, gomono.TTF},
			{&s.Bold, gomonobold.TTF},
			{&s.Italic, gomonoitalic.TTF},
			{&s.BoldItalic, gomonobolditalic.TTF},
		} {
			src, err := text.NewFontSource(v.data)
			if err != nil {
				builtinErr = fmt.Errorf("load %s: %w", BuiltinName, err)
				return
			}
			*v.dst = src
		}
		builtinSet = s
	})
	return builtinSet, builtinErr
}

// Loader finds families by name in Dir and caches them.
type Loader struct {
	Dir string

	mu    sync.Mutex
	cache map[string]*Set
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, cache: map[string]*Set{}}
}

// Slug normalizes a family name for file matching: "Fira Code" -> "firacode".
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Load returns the family for name. An empty name or the builtin name yields
// Go Mono; a family without files in Dir falls back to Go Mono with a warning.
func (l *Loader) Load(name string) (*Set, error) {
	key := Slug(name)
	if key == "" || key == Slug(BuiltinName) {
		return Builtin()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.cache[key]; ok {
		return s, nil
	}
	s, err := l.scan(name, key)
	if err != nil {
		return nil, err
	}
	if s == nil {
		slog.Warn("font not found, using builtin", "font", name, "dir", l.Dir)
		return Builtin()
	}
	l.cache[key] = s
	return s, nil
}

// Files lists the font files in Dir that belong to name.
func (l *Loader) Files(name string) ([]string, error) {
	if l.Dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(l.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read font dir: %w", err)
	}
	key := Slug(name)
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		stem := Slug(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if stem == key || strings.HasPrefix(stem, key) && variantOf(stem[len(key):]) != "" {
			out = append(out, filepath.Join(l.Dir, e.Name()))
		}
	}
	return out, nil
}

// variantOf classifies a file-name suffix after the family slug.
func variantOf(rest string) string {
	switch {
	case rest == "" || rest == "regular":
		return "regular"
	case rest == "bolditalic" || rest == "italicbold":
		return "bolditalic"
	case rest == "bold":
		return "bold"
	case rest == "italic":
		return "italic"
	}
	return ""
}

func (l *Loader) scan(name, key string) (*Set, error) {
	files, err := l.Files(name)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	s := &Set{Name: name}
	for _, path := range files {
		stem := Slug(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", path, err)
		}
		switch variantOf(stem[len(key):]) {
		case "regular":
			s.Regular = src
		case "bold":
			s.Bold = src
		case "italic":
			s.Italic = src
		case "bolditalic":
			s.BoldItalic = src
		}
	}
	if s.Regular == nil {
		// a family shipped only in bold still renders
		for _, src := range []*text.FontSource{s.Bold, s.Italic, s.BoldItalic} {
			if src != nil {
				s.Regular = src
				break
			}
		}
	}
	slog.Debug("font loaded", "font", name, "files", len(files))
	return s, nil
}
