package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/upkeep-sh/upkeep/internal/ports"
)

// TTYExecutor runs update actions with the invoking user's stdio
// attached. Underlying package managers may prompt and block on the
// user's response; that is intentional.
type TTYExecutor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewTTYExecutor creates an executor attached to the process stdio.
func NewTTYExecutor() *TTYExecutor {
	return &TTYExecutor{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Execute runs the action synchronously and classifies the outcome.
func (e *TTYExecutor) Execute(ctx context.Context, action ports.Action) error {
	args := action.Args

	if action.Script != "" {
		path, cleanup, err := writeScript(action.Script)
		if err != nil {
			return &ports.StartError{Cause: err}
		}
		defer cleanup()
		args = append(append([]string{}, args...), path)
	}

	cmd := exec.CommandContext(ctx, action.Program, args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Dir = action.Dir
	if len(action.Env) > 0 {
		cmd.Env = append(os.Environ(), action.Env...)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := signalName(exitErr); ok {
			return &ports.SignalError{Signal: sig}
		}
		return &ports.ExitError{Code: exitErr.ExitCode()}
	}

	return &ports.StartError{Cause: err}
}

// writeScript places an opaque script payload in a temporary file and
// returns its path with a cleanup func.
func writeScript(script string) (string, func(), error) {
	f, err := os.CreateTemp("", "upkeep-*.script")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.WriteString(script); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}

// DryExecutor prints the action instead of running it.
type DryExecutor struct {
	out io.Writer
}

// NewDryExecutor creates a dry-run executor writing to out.
func NewDryExecutor(out io.Writer) *DryExecutor {
	return &DryExecutor{out: out}
}

// Execute prints the command line and reports success.
func (e *DryExecutor) Execute(_ context.Context, action ports.Action) error {
	if action.Dir != "" {
		_, _ = fmt.Fprintf(e.out, "Dry running: %s in %s\n", action.String(), action.Dir)
		return nil
	}
	_, _ = fmt.Fprintf(e.out, "Dry running: %s\n", action.String())
	return nil
}

var (
	_ ports.Executor = (*TTYExecutor)(nil)
	_ ports.Executor = (*DryExecutor)(nil)
)
