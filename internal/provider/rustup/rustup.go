// Package rustup updates the installed Rust toolchains.
package rustup

import (
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step runs rustup update across all installed toolchains.
type Step struct{}

// NewStep creates the rustup step.
func NewStep() *Step {
	return &Step{}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "rustup"
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return providerutil.HasCommand("rustup")
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	return rc.Execute(ports.Action{Program: "rustup", Args: []string{"update"}})
}
