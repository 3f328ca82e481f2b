// Package gem updates user-installed Ruby gems.
package gem

import (
	"os"
	"path/filepath"

	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step upgrades the gems under the user's gem home.
type Step struct{}

// NewStep creates the gem step.
func NewStep() *Step {
	return &Step{}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "RubyGems"
}

// Applies implements engine.Step.
func (s *Step) Applies(rc *engine.RunContext) bool {
	if !providerutil.HasCommand("gem") || rc.HomeDir() == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(rc.HomeDir(), ".gem"))
	return err == nil && info.IsDir()
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	return rc.Execute(ports.Action{Program: "gem", Args: []string{"update", "--user-install"}})
}
