// Package export turns a scene into files and clipboard contents.
package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"snippetkit/internal/render"
)

// Renderer produces image bytes for a scene.
type Renderer interface {
	PNG(ctx context.Context, s render.Scene, o render.Options) ([]byte, error)
	SVG(ctx context.Context, s render.Scene, o render.Options) ([]byte, error)
}

// Clipboard receives copied data.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
	WriteImage(ctx context.Context, mime string, data []byte) error
}

// Action is one export operation.
type Action int

const (
	SavePNG Action = iota
	SaveSVG
	CopyImage
	CopyLink
	CopyText
)

func (a Action) String() string {
	switch a {
	case SavePNG:
		return "save-png"
	case SaveSVG:
		return "save-svg"
	case CopyImage:
		return "copy-image"
	case CopyLink:
		return "copy-link"
	case CopyText:
		return "copy-text"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a CLI name to an Action.
func ParseAction(s string) (Action, bool) {
	for a := SavePNG; a <= CopyText; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// Toast texts shown on success.
const (
	MsgExported   = "Exported Successfully !"
	MsgImageCopy  = "Image Copied !"
	MsgLinkCopied = "Link Copied !"
	MsgTextCopied = "Text Copied !"
)

// Result describes how an action ended. Err is set on failure and Message
// then carries the alert text.
type Result struct {
	Action  Action
	Message string
	Path    string
	Err     error
}

// Exporter wires a renderer and a clipboard to the filesystem.
type Exporter struct {
	Renderer  Renderer
	Clipboard Clipboard
	// Dir receives saved files; empty means the working directory.
	Dir     string
	Options render.Options
}

// Run performs a and never panics on failure; the outcome is in the Result.
func (e *Exporter) Run(ctx context.Context, a Action, s render.Scene) Result {
	res := Result{Action: a}
	var err error
	switch a {
	case SavePNG:
		res.Path, err = e.SavePNG(ctx, s)
		res.Message = MsgExported
	case SaveSVG:
		res.Path, err = e.SaveSVG(ctx, s)
		res.Message = MsgExported
	case CopyImage:
		err = e.CopyImage(ctx, s)
		res.Message = MsgImageCopy
	case CopyLink:
		err = e.CopyDataURL(ctx, s)
		res.Message = MsgLinkCopied
	case CopyText:
		err = e.CopyText(ctx, s)
		res.Message = MsgTextCopied
	default:
		err = fmt.Errorf("unknown export action %d", int(a))
	}
	if err != nil {
		res.Err = err
		res.Message = failure(a, err)
		slog.Warn("export failed", "action", a.String(), "err", err)
		return res
	}
	slog.Info("export done", "action", a.String(), "path", res.Path)
	return res
}

func failure(a Action, err error) string {
	switch a {
	case SavePNG:
		return "PNG export failed: " + err.Error()
	case SaveSVG:
		return "SVG export failed: " + err.Error()
	case CopyImage:
		return "Copy failed. Image clipboard needs wl-copy, xclip or macOS. Error: " + err.Error()
	case CopyLink:
		return "Copy link failed: " + err.Error()
	}
	return "Copy text failed: " + err.Error()
}

// SavePNG renders s and writes it next to Dir, returning the path.
func (e *Exporter) SavePNG(ctx context.Context, s render.Scene) (string, error) {
	data, err := e.Renderer.PNG(ctx, s, e.Options)
	if err != nil {
		return "", err
	}
	return e.write(FileName(s.Title, ".png"), data)
}

// SaveSVG renders s as SVG, ensuring an XML prolog, and writes it.
func (e *Exporter) SaveSVG(ctx context.Context, s render.Scene) (string, error) {
	data, err := e.Renderer.SVG(ctx, s, e.Options)
	if err != nil {
		return "", err
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		data = append([]byte(render.XMLProlog), data...)
	}
	return e.write(FileName(s.Title, ".svg"), data)
}

// CopyImage puts the PNG on the clipboard.
func (e *Exporter) CopyImage(ctx context.Context, s render.Scene) error {
	data, err := e.Renderer.PNG(ctx, s, e.Options)
	if err != nil {
		return err
	}
	return e.Clipboard.WriteImage(ctx, "image/png", data)
}

// CopyDataURL puts the PNG on the clipboard as a data URL string.
func (e *Exporter) CopyDataURL(ctx context.Context, s render.Scene) error {
	data, err := e.Renderer.PNG(ctx, s, e.Options)
	if err != nil {
		return err
	}
	return e.Clipboard.WriteText(ctx, DataURL("image/png", data))
}

// CopyText puts the raw code on the clipboard.
func (e *Exporter) CopyText(ctx context.Context, s render.Scene) error {
	if strings.TrimSpace(s.Code) == "" {
		return render.ErrEmptyScene
	}
	return e.Clipboard.WriteText(ctx, s.Code)
}

func (e *Exporter) write(name string, data []byte) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FileName derives the output file name from the panel title. An empty title
// gives "panel"+ext; a title without an extension gets ext appended.
func FileName(title, ext string) string {
	name := strings.TrimSpace(title)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "panel" + ext
	}
	if filepath.Ext(name) == "" {
		name += ext
	}
	return name
}

// DataURL encodes data as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
