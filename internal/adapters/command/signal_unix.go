//go:build !windows

package command

import (
	"os/exec"
	"syscall"
)

// signalName reports the signal that terminated the child, if any.
func signalName(err *exec.ExitError) (string, bool) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return "", false
	}
	return ws.Signal().String(), true
}
