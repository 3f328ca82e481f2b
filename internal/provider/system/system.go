// Package system updates the operating system's own package manager:
// apt, dnf, or pacman, selected from /etc/os-release.
package system

import (
	"runtime"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
)

// Distro identifies the package manager family of a Linux install.
type Distro string

const (
	// Debian covers apt-based systems (Debian, Ubuntu, Mint).
	Debian Distro = "debian"
	// Fedora covers dnf-based systems (Fedora, RHEL, CentOS).
	Fedora Distro = "fedora"
	// Arch covers pacman-based systems (Arch, Manjaro).
	Arch Distro = "arch"
	// Suse covers zypper-based systems (openSUSE, SLES).
	Suse Distro = "suse"
	// Unknown means no supported package manager was identified.
	Unknown Distro = ""
)

const osReleasePath = "/etc/os-release"

// DetectDistro classifies the install from an os-release file. ID is
// consulted first, then ID_LIKE for derivatives.
func DetectDistro(path string) Distro {
	file, err := ini.Load(path)
	if err != nil {
		return Unknown
	}
	section := file.Section("")

	candidates := []string{section.Key("ID").String()}
	candidates = append(candidates, strings.Fields(section.Key("ID_LIKE").String())...)

	for _, id := range candidates {
		switch id {
		case "debian", "ubuntu", "linuxmint", "pop":
			return Debian
		case "fedora", "rhel", "centos", "rocky", "almalinux":
			return Fedora
		case "arch", "manjaro", "endeavouros":
			return Arch
		case "opensuse", "opensuse-leap", "opensuse-tumbleweed", "sles", "suse":
			return Suse
		}
	}
	return Unknown
}

// Step upgrades every package the system package manager tracks.
type Step struct {
	goos        string
	releasePath string
}

// NewStep creates the system package manager step.
func NewStep() *Step {
	return &Step{goos: runtime.GOOS, releasePath: osReleasePath}
}

// Name implements engine.Step.
func (s *Step) Name() string {
	return "System package manager"
}

// Applies implements engine.Step.
func (s *Step) Applies(_ *engine.RunContext) bool {
	return s.goos == "linux" && DetectDistro(s.releasePath) != Unknown
}

// Run implements engine.Step.
func (s *Step) Run(rc *engine.RunContext) error {
	sudo := providerutil.Sudo()

	switch DetectDistro(s.releasePath) {
	case Debian:
		if err := rc.Execute(escalate(sudo, "apt-get", "update")); err != nil {
			return err
		}
		if err := rc.Execute(escalate(sudo, "apt-get", "dist-upgrade")); err != nil {
			return err
		}
		if rc.Cleanup() {
			return rc.Execute(escalate(sudo, "apt-get", "autoremove"))
		}
		return nil
	case Fedora:
		return rc.Execute(escalate(sudo, "dnf", "upgrade"))
	case Arch:
		return rc.Execute(escalate(sudo, "pacman", "-Syu"))
	case Suse:
		return rc.Execute(escalate(sudo, "zypper", "update"))
	default:
		return engine.Skip("no supported package manager detected")
	}
}

// FinalStep checks for services that need a restart after library
// upgrades. It runs after every other step so it sees the final state.
type FinalStep struct {
	goos string
}

// NewFinalStep creates the post-upgrade restart check.
func NewFinalStep() *FinalStep {
	return &FinalStep{goos: runtime.GOOS}
}

// Name implements engine.Step.
func (s *FinalStep) Name() string {
	return "Restart check"
}

// Applies implements engine.Step.
func (s *FinalStep) Applies(_ *engine.RunContext) bool {
	return s.goos == "linux" && providerutil.HasCommand("needrestart")
}

// Run implements engine.Step.
func (s *FinalStep) Run(rc *engine.RunContext) error {
	return rc.Execute(escalate(providerutil.Sudo(), "needrestart"))
}

func escalate(sudo, program string, args ...string) ports.Action {
	if sudo == "" {
		return ports.Action{Program: program, Args: args}
	}
	return ports.Action{Program: sudo, Args: append([]string{program}, args...)}
}
