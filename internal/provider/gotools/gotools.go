// Package gotools updates binaries installed with go install.
package gotools

import (
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step upgrades go-installed binaries via go-global-update.
type Step struct{}

// NewStep creates the Go tools step.
func NewStep() *Step {
	return &Step{}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "Go tools"
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return providerutil.HasCommand("go")
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	if !providerutil.HasCommand("go-global-update") {
		return engine.Skip("go-global-update is not installed")
	}
	return rc.Execute(ports.Action{Program: "go-global-update"})
}
