//go:build windows

// Package process stops browser processes the PDF engine launched.
package process

import (
	"os/exec"
	"strconv"
)

// KillGroup force-kills pid and its child processes with taskkill.
// Errors are ignored; the launcher's own Kill runs afterwards.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
