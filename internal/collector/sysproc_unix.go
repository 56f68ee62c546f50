package collector

import "syscall"

// newSysProcAttr puts the child in its own process group so it can be
// killed together with everything it starts.
func newSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
