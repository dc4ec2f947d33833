//go:build !unix && !windows

package daemon

import "syscall"

func scriptProcAttr() *syscall.SysProcAttr {
	return nil
}
