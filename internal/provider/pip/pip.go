// Package pip keeps the user's pip installation itself current.
package pip

import (
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step upgrades pip for the user site.
type Step struct{}

// NewStep creates the pip step.
func NewStep() *Step {
	return &Step{}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "Python pip"
}

// Applies implements engine.Step.
func (s *Step) Applies(rc *engine.RunContext) bool {
	if !providerutil.HasCommand("python3") {
		return false
	}
	result, err := rc.Probe().Run(rc.Context(), "python3", "-m", "pip", "--version")
	return err == nil && result.Success()
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	return rc.Execute(ports.Action{
		Program: "python3",
		Args:    []string{"-m", "pip", "install", "--upgrade", "--user", "pip"},
	})
}
