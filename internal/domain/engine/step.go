// Package engine sequences heterogeneous update steps, applies gating
// rules, offers interactive retry, and aggregates a per-run report.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/upkeep-sh/upkeep/internal/ports"
)

// Step is one atomic update action tied to an external tool. Steps are
// immutable once enumerated for a run; order is fixed by the registry.
type Step interface {
	// Name returns the stable display name, e.g. "System package manager".
	Name() string

	// Applies reports whether this step makes sense on this machine.
	// Steps that do not apply are filtered out before consideration
	// and never appear in the report.
	Applies(rc *RunContext) bool

	// Run performs the update via the executor in rc. Returning a
	// *SkipError records the step as Skipped; any other error is a
	// failure subject to the retry policy.
	Run(rc *RunContext) error
}

// SkipError marks a step that discovered mid-run there is nothing for
// it to do. It is recorded as Skipped, not Failed.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("step skipped: %s", e.Reason)
}

// Skip returns a SkipError with the given reason.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

// IsSkip reports whether err is a SkipError.
func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}

// RunContext carries the execution environment down the call chain
// from the orchestrator into each step. It replaces any process-wide
// mutable state; everything a step may consult lives here.
type RunContext struct {
	ctx     context.Context
	logger  ports.Logger
	probe   ports.CommandRunner
	exec    ports.Executor
	home    string
	dryRun  bool
	cleanup bool
}

// NewRunContext creates a RunContext.
func NewRunContext(ctx context.Context, logger ports.Logger, probe ports.CommandRunner, exec ports.Executor) *RunContext {
	return &RunContext{
		ctx:    ctx,
		logger: logger,
		probe:  probe,
		exec:   exec,
	}
}

// Context returns the underlying context.Context.
func (rc *RunContext) Context() context.Context {
	return rc.ctx
}

// Logger returns the run logger.
func (rc *RunContext) Logger() ports.Logger {
	return rc.logger
}

// Probe returns the captured-output command runner used for
// applicability checks.
func (rc *RunContext) Probe() ports.CommandRunner {
	return rc.probe
}

// Executor returns the executor for update actions.
func (rc *RunContext) Executor() ports.Executor {
	return rc.exec
}

// Execute runs one action through the configured executor.
func (rc *RunContext) Execute(action ports.Action) error {
	return rc.exec.Execute(rc.ctx, action)
}

// HomeDir returns the invoking user's home directory.
func (rc *RunContext) HomeDir() string {
	return rc.home
}

// DryRun reports whether actions are printed instead of executed.
func (rc *RunContext) DryRun() bool {
	return rc.dryRun
}

// Cleanup reports whether providers should run post-upgrade cleanup.
func (rc *RunContext) Cleanup() bool {
	return rc.cleanup
}

// WithHomeDir returns a copy with the home directory set.
func (rc *RunContext) WithHomeDir(home string) *RunContext {
	out := *rc
	out.home = home
	return &out
}

// WithDryRun returns a copy with the dry-run flag set.
func (rc *RunContext) WithDryRun(dry bool) *RunContext {
	out := *rc
	out.dryRun = dry
	return &out
}

// WithCleanup returns a copy with the cleanup flag set.
func (rc *RunContext) WithCleanup(cleanup bool) *RunContext {
	out := *rc
	out.cleanup = cleanup
	return &out
}
