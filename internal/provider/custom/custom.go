// Package custom runs user-configured shell commands as steps.
package custom

import (
	"github.com/upkeep-sh/upkeep/internal/domain/config"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
)

// Step runs one configured command through the shell. Custom steps
// always apply; the user asked for them by name.
type Step struct {
	name    string
	command string
}

// NewStep creates a step for one named command.
func NewStep(cmd config.NamedCommand) *Step {
	return &Step{name: cmd.Name, command: cmd.Command}
}

// Steps builds one step per configured command, preserving order.
func Steps(cmds []config.NamedCommand) []engine.Step {
	out := make([]engine.Step, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, NewStep(cmd))
	}
	return out
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return s.name
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return true
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	return rc.Execute(engine.ShellCommand(s.command))
}
