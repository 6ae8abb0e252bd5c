//go:build !linux

package supervisor

import "syscall"

// procAttr puts the child in its own process group so signals aimed at the
// dashboard do not reach it directly.
func procAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
