// Package brew updates Homebrew formulae and casks.
package brew

import (
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// FormulaStep refreshes the Homebrew index and upgrades every
// installed formula.
type FormulaStep struct{}

// NewFormulaStep creates the formula upgrade step.
func NewFormulaStep() *FormulaStep {
	return &FormulaStep{}
}

// Name implements engine.Step.
func (s *FormulaStep) Name() string {
	return "Homebrew"
}

// Applies implements engine.Step.
func (s *FormulaStep) Applies(_ *engine.RunContext) bool {
	return providerutil.HasCommand("brew")
}

// Run implements engine.Step.
func (s *FormulaStep) Run(rc *engine.RunContext) error {
	if err := rc.Execute(ports.Action{Program: "brew", Args: []string{"update"}}); err != nil {
		return err
	}
	if err := rc.Execute(ports.Action{Program: "brew", Args: []string{"upgrade", "--formula"}}); err != nil {
		return err
	}
	if rc.Cleanup() {
		return rc.Execute(ports.Action{Program: "brew", Args: []string{"cleanup"}})
	}
	return nil
}

// CaskStep upgrades installed Homebrew casks.
type CaskStep struct {
	greedy bool
}

// NewCaskStep creates the cask upgrade step. With greedy set, casks
// that auto-update themselves are upgraded too.
func NewCaskStep(greedy bool) *CaskStep {
	return &CaskStep{greedy: greedy}
}

// Name implements engine.Step.
func (s *CaskStep) Name() string {
	return "Homebrew Cask"
}

// Applies implements engine.Step.
func (s *CaskStep) Applies(_ *engine.RunContext) bool {
	return providerutil.HasCommand("brew")
}

// Run implements engine.Step.
func (s *CaskStep) Run(rc *engine.RunContext) error {
	args := []string{"upgrade", "--cask"}
	if s.greedy {
		args = append(args, "--greedy")
	}
	return rc.Execute(ports.Action{Program: "brew", Args: args})
}
