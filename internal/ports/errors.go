package ports

import "fmt"

// ExitError reports an action that ran to completion with a nonzero
// exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exited with code %d", e.Code)
}

// SignalError reports an action that was terminated by a signal.
type SignalError struct {
	Signal string
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("terminated by signal %s", e.Signal)
}

// StartError reports an action that could not be started at all:
// missing binary, permission denied, spawn failure.
type StartError struct {
	Cause error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start: %v", e.Cause)
}

func (e *StartError) Unwrap() error {
	return e.Cause
}
