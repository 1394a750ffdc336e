//go:build !windows

// Package process cleans up browser processes left behind by the PDF renderer.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes the browser's renderer and GPU helpers down with it.
// Non-positive PIDs are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort; the launcher's own Kill runs after this.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
