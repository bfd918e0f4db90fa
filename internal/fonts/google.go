package fonts

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"snippetkit/internal/httpx"
)

// GoogleCSSBase is the Google Fonts stylesheet endpoint.
var GoogleCSSBase = "https://fonts.googleapis.com/css2"

// GoogleCSSURL builds the stylesheet URL for a family at weights 400 and 700.
func GoogleCSSURL(family string) string {
	encoded := strings.ReplaceAll(url.PathEscape(family), "%20", "+")
	return GoogleCSSBase + "?family=" + encoded + ":wght@400;700&display=swap"
}

var (
	faceBlockRe = regexp.MustCompile(`(?s)@font-face\s*\{(.*?)\}`)
	weightRe    = regexp.MustCompile(`font-weight:\s*(\d+)`)
	srcURLRe    = regexp.MustCompile(`src:\s*url\(([^)]+)\)`)
)

// FontFile is one downloadable face from a stylesheet.
type FontFile struct {
	Weight string
	URL    string
}

// ParseCSS extracts the face URLs from a Google Fonts stylesheet. Only the
// first source per weight is kept.
func ParseCSS(css string) []FontFile {
	var out []FontFile
	seen := map[string]bool{}
	for _, m := range faceBlockRe.FindAllStringSubmatch(css, -1) {
		block := m[1]
		w := "400"
		if wm := weightRe.FindStringSubmatch(block); wm != nil {
			w = wm[1]
		}
		sm := srcURLRe.FindStringSubmatch(block)
		if sm == nil || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, FontFile{Weight: w, URL: strings.Trim(sm[1], `'"`)})
	}
	return out
}

// Fetch downloads family from Google Fonts into dir as
// "<Family>-Regular.ttf" and "<Family>-Bold.ttf" and returns the written paths.
func Fetch(ctx context.Context, family, dir string) ([]string, error) {
	family = strings.TrimSpace(family)
	if family == "" {
		return nil, fmt.Errorf("fetch font: empty family")
	}
	css, err := httpx.Get(ctx, GoogleCSSURL(family))
	if err != nil {
		return nil, fmt.Errorf("fetch font %q: %w", family, err)
	}
	files := ParseCSS(string(css))
	if len(files) == 0 {
		return nil, fmt.Errorf("fetch font %q: stylesheet lists no font files", family)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create font dir: %w", err)
	}
	stem := strings.ReplaceAll(family, " ", "")
	var written []string
	for _, f := range files {
		variant := "Regular"
		if f.Weight == "700" {
			variant = "Bold"
		}
		data, err := httpx.Get(ctx, f.URL)
		if err != nil {
			return written, fmt.Errorf("fetch font %q %s: %w", family, variant, err)
		}
		path := filepath.Join(dir, stem+"-"+variant+filepath.Ext(urlPath(f.URL)))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		slog.Info("font fetched", "family", family, "variant", variant, "path", path, "bytes", len(data))
		written = append(written, path)
	}
	return written, nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || filepath.Ext(u.Path) == "" {
		return ".ttf"
	}
	return u.Path
}
