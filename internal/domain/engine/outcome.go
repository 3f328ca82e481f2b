package engine

// Kind classifies a step outcome.
type Kind string

const (
	// Succeeded means the step's action exited cleanly.
	Succeeded Kind = "succeeded"
	// Failed means the step's action failed and the failure was accepted.
	Failed Kind = "failed"
	// Skipped means the step bowed out mid-run with a reason.
	Skipped Kind = "skipped"
	// Ignored means the step failed but its name is listed under
	// ignore_failures, so the failure does not affect the exit code.
	Ignored Kind = "ignored"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Outcome is the terminal result of one considered step. It is
// produced exactly once per step per run, after all retries.
type Outcome struct {
	Kind   Kind
	Reason string
}

// Succeed returns a Succeeded outcome.
func Succeed() Outcome {
	return Outcome{Kind: Succeeded}
}

// Fail returns a Failed outcome with the failure reason.
func Fail(reason string) Outcome {
	return Outcome{Kind: Failed, Reason: reason}
}

// SkipOutcome returns a Skipped outcome with the reason.
func SkipOutcome(reason string) Outcome {
	return Outcome{Kind: Skipped, Reason: reason}
}

// Ignore returns an Ignored outcome with the failure reason.
func Ignore(reason string) Outcome {
	return Outcome{Kind: Ignored, Reason: reason}
}

// IsFailure reports whether the outcome counts against the run.
func (o Outcome) IsFailure() bool {
	return o.Kind == Failed
}
