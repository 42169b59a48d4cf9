//go:build !windows

// Package process stops browser processes the PDF engine launched.
package process

import "syscall"

// KillGroup sends SIGKILL to the process group led by pid, taking Chrome's
// renderer and GPU helpers down with it. Errors are ignored; the launcher's
// own Kill runs afterwards.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
