// Package providerutil holds small helpers shared by the update
// providers: PATH lookups and privilege escalation detection.
package providerutil

import (
	"os/exec"
)

// LookPath resolves an executable on PATH. Tests replace it to script
// which tools exist.
var LookPath = exec.LookPath

// HasCommand reports whether an executable with the given name is on
// PATH.
func HasCommand(name string) bool {
	_, err := LookPath(name)
	return err == nil
}

// Sudo returns the privilege escalation command to prefix system-wide
// actions with, or "" when none is installed.
func Sudo() string {
	for _, candidate := range []string{"sudo", "doas"} {
		if HasCommand(candidate) {
			return candidate
		}
	}
	return ""
}
