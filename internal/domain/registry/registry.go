// Package registry enumerates the update steps for a run in their
// fixed execution order.
package registry

import (
	"github.com/upkeep-sh/upkeep/internal/domain/config"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/provider/brew"
	"github.com/upkeep-sh/upkeep/internal/provider/cargo"
	"github.com/upkeep-sh/upkeep/internal/provider/custom"
	"github.com/upkeep-sh/upkeep/internal/provider/gem"
	"github.com/upkeep-sh/upkeep/internal/provider/git"
	"github.com/upkeep-sh/upkeep/internal/provider/gotools"
	"github.com/upkeep-sh/upkeep/internal/provider/macos"
	"github.com/upkeep-sh/upkeep/internal/provider/npm"
	"github.com/upkeep-sh/upkeep/internal/provider/pip"
	"github.com/upkeep-sh/upkeep/internal/provider/rustup"
	"github.com/upkeep-sh/upkeep/internal/provider/system"
	"github.com/upkeep-sh/upkeep/internal/provider/vim"
)

// Steps returns every known step in execution order: system package
// managers first, language tooling next, then user commands, and the
// potentially rebooting system updates dead last.
func Steps(cfg *config.Config) []engine.Step {
	steps := []engine.Step{
		system.NewStep(),
		brew.NewFormulaStep(),
		brew.NewCaskStep(cfg.BrewCaskGreedy()),
		rustup.NewStep(),
		cargo.NewStep(),
		pip.NewStep(),
		gem.NewStep(),
		npm.NewStep(),
		gotools.NewStep(),
		vim.NewVimStep(),
		vim.NewNeovimStep(),
		git.NewStep(cfg.GitRepos()),
		macos.NewAppStoreStep(),
	}

	steps = append(steps, custom.Steps(cfg.CustomCommands())...)

	// Final stage: updates that can restart services or the machine.
	steps = append(steps,
		macos.NewSystemStep(),
		system.NewFinalStep(),
	)
	return steps
}

// Names returns the step names in execution order. Custom command
// names come from the configuration; everything else is static.
func Names(cfg *config.Config) []string {
	steps := Steps(cfg)
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.Name())
	}
	return names
}
