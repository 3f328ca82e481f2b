// Package vim updates Vim and Neovim plugins. The editor is driven in
// batch mode with a generated script, so the step works for any
// plugin framework it can detect.
package vim

import (
	"os"
	"path/filepath"

	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

const plugScript = `set nocompatible
PlugUpgrade
PlugUpdate
quitall
`

const packerScript = `set nocompatible
autocmd User PackerComplete quitall
PackerSync
`

// VimStep updates vim-plug managed plugins in Vim.
type VimStep struct{}

// NewVimStep creates the Vim plugin step.
func NewVimStep() *VimStep {
	return &VimStep{}
}

// Name implements engine.Step.
func (s *VimStep) Name() string {
	return "Vim"
}

// Applies implements engine.Step.
func (s *VimStep) Applies(rc *engine.RunContext) bool {
	return providerutil.HasCommand("vim") && hasFile(rc, ".vim", "autoload", "plug.vim")
}

// Run implements engine.Step.
func (s *VimStep) Run(rc *engine.RunContext) error {
	return rc.Execute(ports.Action{
		Program: "vim",
		Args:    []string{"-N", "-e", "-s", "-S"},
		Script:  plugScript,
	})
}

// NeovimStep updates Neovim plugins managed by vim-plug or packer.
type NeovimStep struct{}

// NewNeovimStep creates the Neovim plugin step.
func NewNeovimStep() *NeovimStep {
	return &NeovimStep{}
}

// Name implements engine.Step.
func (s *NeovimStep) Name() string {
	return "Neovim"
}

// Applies implements engine.Step.
func (s *NeovimStep) Applies(rc *engine.RunContext) bool {
	return providerutil.HasCommand("nvim") && (s.hasPlug(rc) || s.hasPacker(rc))
}

// Run implements engine.Step.
func (s *NeovimStep) Run(rc *engine.RunContext) error {
	script := plugScript
	if !s.hasPlug(rc) {
		script = packerScript
	}
	return rc.Execute(ports.Action{
		Program: "nvim",
		Args:    []string{"--headless", "-S"},
		Script:  script,
	})
}

func (s *NeovimStep) hasPlug(rc *engine.RunContext) bool {
	return hasFile(rc, ".local", "share", "nvim", "site", "autoload", "plug.vim")
}

func (s *NeovimStep) hasPacker(rc *engine.RunContext) bool {
	return hasFile(rc, ".local", "share", "nvim", "site", "pack", "packer")
}

func hasFile(rc *engine.RunContext, parts ...string) bool {
	if rc.HomeDir() == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(append([]string{rc.HomeDir()}, parts...)...))
	return err == nil
}
