package supervisor

import "syscall"

// procAttr puts the child in its own process group so signals aimed at the
// dashboard do not reach it directly. Pdeathsig tears the child down if the
// dashboard dies without running its shutdown path; it only exists on Linux.
func procAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
