// Package proc runs short-lived helper programs (clipboard tools) with
// stdin piped in and stderr forwarded to the log.
package proc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Runner starts a program, feeds it stdin and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) error
}

// LookPath reports the full path of an executable, like exec.LookPath.
type LookPath func(file string) (string, error)

// Exec is the os/exec backed Runner.
type Exec struct {
	// WaitDelay bounds how long Run waits on the helper's pipes after it
	// exits or is cancelled.
	WaitDelay time.Duration
}

func (e Exec) Run(ctx context.Context, stdin []byte, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = newSysProcAttrForGroup()
	cmd.Cancel = func() error { return terminate(cmd) }
	cmd.WaitDelay = e.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = 2 * time.Second
	}
	cmd.Stdin = bytes.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	last := logLines(name, &stderr)
	// helpers that fork to own the selection may keep stderr open
	if errors.Is(err, exec.ErrWaitDelay) {
		return nil
	}
	if err != nil {
		if last != "" {
			return fmt.Errorf("%s: %w: %s", name, err, last)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// logLines forwards non-empty stderr lines to the debug log and returns the
// last one.
func logLines(name string, r io.Reader) string {
	last := ""
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		last = line
		slog.Debug("helper stderr", "cmd", name, "line", line)
	}
	return last
}

func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return errors.New("no process")
	}
	// Try graceful interrupt, fallback to Kill
	if runtime.GOOS == "windows" {
		return cmd.Process.Kill()
	}
	return cmd.Process.Signal(os.Interrupt)
}
