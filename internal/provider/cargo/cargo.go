// Package cargo updates binaries installed with cargo install.
package cargo

import (
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step upgrades every cargo-installed binary via the cargo-update
// extension.
type Step struct{}

// NewStep creates the cargo step.
func NewStep() *Step {
	return &Step{}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "Cargo"
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return providerutil.HasCommand("cargo")
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	if !providerutil.HasCommand("cargo-install-update") {
		return engine.Skip("cargo-update is not installed")
	}
	if err := rc.Execute(ports.Action{Program: "cargo", Args: []string{"install-update", "--all"}}); err != nil {
		return err
	}
	if rc.Cleanup() && providerutil.HasCommand("cargo-cache") {
		return rc.Execute(ports.Action{Program: "cargo", Args: []string{"cache", "--autoclean"}})
	}
	return nil
}
