package engine

import (
	"errors"
	"fmt"
)

// Exit codes for the process. Pre-command and configuration failures
// abort before any step runs and use a code distinct from "the run
// completed but steps failed".
const (
	ExitSuccess     = 0
	ExitStepsFailed = 1
	ExitAborted     = 2
)

// ErrStepsFailed reports that the run completed but at least one step
// failed. The report has already been rendered when this surfaces.
var ErrStepsFailed = errors.New("some steps failed")

// PreCommandError reports a failed pre-command. The run aborts before
// any step is attempted and no report is produced.
type PreCommandError struct {
	Name string
	Err  error
}

func (e *PreCommandError) Error() string {
	return fmt.Sprintf("pre-command %q failed: %v", e.Name, e.Err)
}

func (e *PreCommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pre *PreCommandError
	if errors.As(err, &pre) {
		return ExitAborted
	}
	if errors.Is(err, ErrStepsFailed) {
		return ExitStepsFailed
	}
	return ExitAborted
}
