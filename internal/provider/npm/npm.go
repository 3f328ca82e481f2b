// Package npm updates globally installed Node packages.
package npm

import (
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step upgrades the packages installed with npm --global.
type Step struct{}

// NewStep creates the npm step.
func NewStep() *Step {
	return &Step{}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "Node Package Manager"
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return providerutil.HasCommand("npm")
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	// The global root must be resolvable before touching it; a broken
	// npm prefix otherwise produces a confusing partial failure.
	result, err := rc.Probe().Run(rc.Context(), "npm", "root", "-g")
	if err != nil || !result.Success() {
		return engine.Skip("cannot determine the npm global root")
	}
	return rc.Execute(ports.Action{Program: "npm", Args: []string{"update", "--global"}})
}
