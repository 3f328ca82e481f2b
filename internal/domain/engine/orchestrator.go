package engine

import (
	"github.com/upkeep-sh/upkeep/internal/ports"
)

// Gate describes the name-based filters applied at evaluation time.
type Gate struct {
	// Disabled steps are filtered out before consideration.
	Disabled map[string]bool
	// Only, when non-empty, restricts the run to the named steps.
	Only map[string]bool
}

// Allows reports whether the named step passes the gate.
func (g Gate) Allows(name string) bool {
	if g.Disabled[name] {
		return false
	}
	if len(g.Only) > 0 && !g.Only[name] {
		return false
	}
	return true
}

// PreCommand is a gating command that must succeed before any step runs.
type PreCommand struct {
	Name   string
	Action ports.Action
}

// Orchestrator owns the ordered step list and drives the step runner
// over it, accumulating the report.
type Orchestrator struct {
	runner *StepRunner
	gate   Gate
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(runner *StepRunner, gate Gate) *Orchestrator {
	return &Orchestrator{runner: runner, gate: gate}
}

// RunPreCommands executes the gating commands in order. The first
// failure aborts with a PreCommandError; no report exists yet.
func (o *Orchestrator) RunPreCommands(rc *RunContext, commands []PreCommand) error {
	for _, pre := range commands {
		rc.Logger().Debug(rc.Context(), "running pre-command", ports.F("name", pre.Name))
		if err := rc.Execute(pre.Action); err != nil {
			return &PreCommandError{Name: pre.Name, Err: err}
		}
	}
	return nil
}

// Run iterates the steps in order and returns the completed report.
// A failure in one step never prevents attempting the others.
func (o *Orchestrator) Run(rc *RunContext, steps []Step) (*Report, error) {
	report := NewReport()
	logger := rc.Logger().With(ports.F("run", report.RunID()))

	for _, step := range steps {
		outcome, considered, err := o.runner.Run(rc.withLogger(logger), step, !o.gate.Allows(step.Name()))
		if err != nil {
			return nil, err
		}
		if !considered {
			continue
		}
		report.Record(step.Name(), outcome)
		logger.Debug(rc.Context(), "step finished",
			ports.F("step", step.Name()),
			ports.F("outcome", outcome.Kind.String()))
	}

	return report, nil
}

// withLogger returns a copy of rc carrying the given logger.
func (rc *RunContext) withLogger(logger ports.Logger) *RunContext {
	out := *rc
	out.logger = logger
	return &out
}

// ShellCommand wraps a configured command line so the shell handles
// quoting and expansion, the way the user wrote it.
func ShellCommand(command string) ports.Action {
	return ports.Action{Program: "sh", Args: []string{"-c", command}}
}
