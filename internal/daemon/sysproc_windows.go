//go:build windows

package daemon

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// scriptProcAttr puts launch scripts in their own process group so a
// Ctrl+C aimed at the launcher does not reach the daemon they start.
func scriptProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}
