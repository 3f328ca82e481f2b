// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"strings"
)

// CommandResult represents the result of executing a probe command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// CommandRunner executes short probe commands with captured output.
// Steps use it for applicability checks ("is brew installed, what does
// it report"); the actual update actions go through Executor instead so
// the underlying tool can talk to the user's terminal.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}

// Action is one runnable external command. Program and Args describe a
// plain command line; Script, when non-empty, is an opaque payload that
// the executor writes to a temporary file and appends as the final
// argument (editor plugin managers are driven this way).
type Action struct {
	Program string
	Args    []string
	Dir     string
	Env     []string
	Script  string
}

// String renders the action the way it would be typed in a shell.
func (a Action) String() string {
	parts := append([]string{a.Program}, a.Args...)
	if a.Script != "" {
		parts = append(parts, "<script>")
	}
	return strings.Join(parts, " ")
}

// Executor runs one action synchronously with the invoking user's
// terminal attached, so interactive prompts from underlying package
// managers reach the user. It never retries; retry policy belongs to
// the step runner. Failures are reported as *ExitError, *SignalError
// or *StartError.
type Executor interface {
	Execute(ctx context.Context, action Action) error
}
