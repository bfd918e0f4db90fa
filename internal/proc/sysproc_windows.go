//go:build windows

package proc

import (
	"syscall"

	winapi "golang.org/x/sys/windows"
)

func newSysProcAttrForGroup() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: winapi.CREATE_NEW_PROCESS_GROUP}
}
