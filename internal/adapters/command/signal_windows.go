//go:build windows

package command

import "os/exec"

// signalName reports the signal that terminated the child, if any.
// Windows has no process signals; termination shows up as an exit code.
func signalName(_ *exec.ExitError) (string, bool) {
	return "", false
}
