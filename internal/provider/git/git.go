// Package git bulk-pulls a configured list of local repositories.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Step fast-forwards every configured repository. One broken checkout
// does not stop the others; the step fails at the end if any pull
// failed.
type Step struct {
	repos []string
}

// NewStep creates the git step for the configured repository paths.
func NewStep(repos []string) *Step {
	return &Step{repos: repos}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "Git repositories"
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return len(s.repos) > 0 && providerutil.HasCommand("git")
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	var failed []string
	pulled := 0

	for _, repo := range s.repos {
		path := expand(repo, rc.HomeDir())
		if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
			rc.Logger().Warn(rc.Context(), "not a git repository, skipping", ports.F("path", path))
			continue
		}
		pulled++
		action := ports.Action{Program: "git", Args: []string{"-C", path, "pull", "--ff-only"}}
		if err := rc.Execute(action); err != nil {
			rc.Logger().Warn(rc.Context(), "pull failed", ports.F("path", path), ports.F("error", err.Error()))
			failed = append(failed, path)
		}
	}

	if pulled == 0 {
		return engine.Skip("no configured path is a git repository")
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to pull: %s", strings.Join(failed, ", "))
	}
	return nil
}

func expand(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
