// Package selfupdate checks for a newer upkeep release and reports
// whether the running binary was replaced. The download and swap are
// delegated to a Replacer; the engine only consumes the signal
// "upgraded, please respawn" versus "nothing to do".
package selfupdate

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/upkeep-sh/upkeep/internal/ports"
)

// Outcome is the result of a self-update check.
type Outcome int

const (
	// UpToDate means the running binary is current; proceed in-process.
	UpToDate Outcome = iota
	// Upgraded means a newer binary is in place; the process must be
	// respawned before any step executes.
	Upgraded
)

// ReleaseSource reports the latest published version.
type ReleaseSource interface {
	Latest(ctx context.Context) (string, error)
}

// Replacer swaps the running binary for the given version.
type Replacer interface {
	Replace(ctx context.Context, version string) error
}

// GitHubSource reads the latest release tag using the gh CLI.
type GitHubSource struct {
	runner ports.CommandRunner
	repo   string
}

// NewGitHubSource creates a source for the given owner/repo.
func NewGitHubSource(runner ports.CommandRunner, repo string) *GitHubSource {
	return &GitHubSource{runner: runner, repo: repo}
}

// Latest returns the newest release tag.
func (s *GitHubSource) Latest(ctx context.Context) (string, error) {
	result, err := s.runner.Run(ctx, "gh", "api", "repos/"+s.repo+"/releases/latest", "--jq", ".tag_name")
	if err != nil {
		return "", fmt.Errorf("failed to query releases: %w", err)
	}
	if !result.Success() {
		return "", fmt.Errorf("failed to query releases: %s", strings.TrimSpace(result.Stderr))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// DefaultInstallCommand reinstalls the binary through the hosted
// install script, which overwrites it in place.
const DefaultInstallCommand = "curl -fsSL https://raw.githubusercontent.com/upkeep-sh/upkeep/main/install.sh | sh"

// ShellReplacer swaps the binary by running an install command through
// the shell.
type ShellReplacer struct {
	exec    ports.Executor
	command string
}

// NewShellReplacer creates a replacer running DefaultInstallCommand.
func NewShellReplacer(exec ports.Executor) *ShellReplacer {
	return &ShellReplacer{exec: exec, command: DefaultInstallCommand}
}

// Replace implements Replacer.
func (r *ShellReplacer) Replace(ctx context.Context, _ string) error {
	return r.exec.Execute(ctx, ports.Action{Program: "sh", Args: []string{"-c", r.command}})
}

// Updater compares the running version against the latest release and
// drives the Replacer when behind.
type Updater struct {
	source   ReleaseSource
	replacer Replacer
	current  string
	logger   ports.Logger
}

// NewUpdater creates an Updater for the given running version.
func NewUpdater(source ReleaseSource, replacer Replacer, current string, logger ports.Logger) *Updater {
	return &Updater{source: source, replacer: replacer, current: current, logger: logger}
}

// Check performs the update check. Failures to even determine the
// latest version are returned to the caller, which treats them as a
// warning, never as a fatal error.
func (u *Updater) Check(ctx context.Context) (Outcome, error) {
	latest, err := u.source.Latest(ctx)
	if err != nil {
		return UpToDate, err
	}

	if !Newer(u.current, latest) {
		u.logger.Debug(ctx, "binary is up to date", ports.F("version", u.current))
		return UpToDate, nil
	}

	u.logger.Info(ctx, "updating binary",
		ports.F("current", u.current),
		ports.F("latest", latest))

	if err := u.replacer.Replace(ctx, latest); err != nil {
		return UpToDate, fmt.Errorf("self-update failed: %w", err)
	}
	return Upgraded, nil
}

// Newer reports whether latest is a strictly newer semantic version
// than current. Tags with or without the "v" prefix are accepted.
func Newer(current, latest string) bool {
	cur := canonical(current)
	lat := canonical(latest)
	if !semver.IsValid(cur) || !semver.IsValid(lat) {
		return false
	}
	return semver.Compare(lat, cur) > 0
}

func canonical(version string) string {
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
