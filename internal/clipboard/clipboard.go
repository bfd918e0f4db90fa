// Package clipboard writes text and images to the system clipboard. Text
// goes through atotto/clipboard and falls back to an OSC 52 escape written
// to the controlling terminal; images are piped into a platform helper.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"snippetkit/internal/proc"
)

// ErrNoClipboard means neither the system clipboard nor a fallback could
// take the data.
var ErrNoClipboard = errors.New("no clipboard available")

// Clipboard is the clipboard collaborator. The zero value is not usable;
// call New.
type Clipboard struct {
	Runner   proc.Runner
	LookPath proc.LookPath
	GOOS     string
	Getenv   func(string) string
	// Terminal opens the terminal OSC 52 sequences are written to. Nil
	// disables the fallback.
	Terminal func() (io.WriteCloser, error)
	// TempDir holds image files handed to helpers that cannot read stdin.
	TempDir string

	systemText  func(string) error
	unsupported func() bool
}

// New returns a clipboard bound to the real system.
func New() *Clipboard {
	return &Clipboard{
		Runner:      proc.Exec{},
		LookPath:    exec.LookPath,
		GOOS:        runtime.GOOS,
		Getenv:      os.Getenv,
		Terminal:    openTTY,
		TempDir:     os.TempDir(),
		systemText:  clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// WriteText puts text on the clipboard.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.unsupported() {
		err := c.systemText(text)
		if err == nil {
			return nil
		}
		slog.Info("system clipboard failed, trying OSC 52", "err", err)
	}
	if c.Terminal == nil {
		return ErrNoClipboard
	}
	tty, err := c.Terminal()
	if err != nil {
		return fmt.Errorf("%w: open terminal: %v", ErrNoClipboard, err)
	}
	defer tty.Close()
	if _, err := c.sequence(text).WriteTo(tty); err != nil {
		return fmt.Errorf("write OSC 52: %w", err)
	}
	return nil
}

func (c *Clipboard) sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	term := c.Getenv("TERM")
	switch {
	case c.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	return seq
}

// helper is a resolved image clipboard program.
type helper struct {
	name string
	args []string
	// file means the data goes through a temp file instead of stdin.
	file bool
}

func (c *Clipboard) imageHelper(mime string) (helper, error) {
	switch c.GOOS {
	case "darwin":
		return helper{name: "osascript", file: true}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if c.Getenv("WAYLAND_DISPLAY") != "" {
			if _, err := c.LookPath("wl-copy"); err == nil {
				return helper{name: "wl-copy", args: []string{"--type", mime}}, nil
			}
		}
		if _, err := c.LookPath("xclip"); err == nil {
			return helper{name: "xclip", args: []string{"-selection", "clipboard", "-t", mime, "-i"}}, nil
		}
		return helper{}, fmt.Errorf("%w: install wl-copy or xclip to copy images", ErrNoClipboard)
	}
	return helper{}, fmt.Errorf("%w: image copy is not supported on %s", ErrNoClipboard, c.GOOS)
}

// appleClass maps a mime type to the AppleScript clipboard class.
func appleClass(mime string) string {
	if mime == "image/svg+xml" {
		return "«class utf8»"
	}
	return "«class PNGf»"
}

// WriteImage puts data of the given mime type on the clipboard.
func (c *Clipboard) WriteImage(ctx context.Context, mime string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("copy image: no data")
	}
	h, err := c.imageHelper(mime)
	if err != nil {
		return err
	}
	if !h.file {
		slog.Debug("copy image", "helper", h.name, "mime", mime, "bytes", len(data))
		return c.Runner.Run(ctx, data, h.name, h.args...)
	}

	f, err := os.CreateTemp(c.TempDir, "snippetkit-*"+extFor(mime))
	if err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("copy image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	script := fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as %s)`, filepath.ToSlash(path), appleClass(mime))
	slog.Debug("copy image", "helper", h.name, "mime", mime, "bytes", len(data))
	return c.Runner.Run(ctx, nil, h.name, "-e", script)
}

func extFor(mime string) string {
	if mime == "image/svg+xml" {
		return ".svg"
	}
	return ".png"
}
