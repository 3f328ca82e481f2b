// Package macos updates Mac App Store apps and macOS itself.
package macos

import (
	"runtime"

	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// AppStoreStep upgrades Mac App Store applications through mas.
type AppStoreStep struct {
	goos string
}

// NewAppStoreStep creates the App Store step.
func NewAppStoreStep() *AppStoreStep {
	return &AppStoreStep{goos: runtime.GOOS}
}

// Name implements engine.Step.
func (s *AppStoreStep) Name() string {
	return "Mac App Store"
}

// Applies implements engine.Step.
func (s *AppStoreStep) Applies(_ *engine.RunContext) bool {
	return s.goos == "darwin" && providerutil.HasCommand("mas")
}

// Run implements engine.Step.
func (s *AppStoreStep) Run(rc *engine.RunContext) error {
	return rc.Execute(ports.Action{Program: "mas", Args: []string{"upgrade"}})
}

// SystemStep installs macOS system updates. It may trigger a reboot,
// so the registry schedules it after every other step.
type SystemStep struct {
	goos string
}

// NewSystemStep creates the macOS system update step.
func NewSystemStep() *SystemStep {
	return &SystemStep{goos: runtime.GOOS}
}

// Name implements engine.Step.
func (s *SystemStep) Name() string {
	return "macOS system update"
}

// Applies implements engine.Step.
func (s *SystemStep) Applies(_ *engine.RunContext) bool {
	return s.goos == "darwin"
}

// Run implements engine.Step.
func (s *SystemStep) Run(rc *engine.RunContext) error {
	return rc.Execute(ports.Action{Program: "softwareupdate", Args: []string{"--install", "--all"}})
}
