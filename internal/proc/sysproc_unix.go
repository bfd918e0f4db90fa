//go:build !windows

package proc

import "syscall"

// newSysProcAttrForGroup puts the helper in its own process group so a
// terminal interrupt aimed at the TUI does not reach it.
func newSysProcAttrForGroup() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
