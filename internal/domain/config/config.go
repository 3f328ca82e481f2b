// Package config loads and validates the upkeep configuration file.
package config

import "sort"

// NamedCommand is one user-configured command.
type NamedCommand struct {
	Name    string
	Command string
}

// File mirrors the on-disk configuration. TOML is the primary format;
// the same structure is accepted as YAML.
type File struct {
	RunInTmux      bool              `toml:"run_in_tmux" yaml:"run_in_tmux"`
	TmuxArguments  string            `toml:"tmux_arguments" yaml:"tmux_arguments"`
	Disable        []string          `toml:"disable" yaml:"disable"`
	IgnoreFailures []string          `toml:"ignore_failures" yaml:"ignore_failures"`
	RemoteHosts    []string          `toml:"remote_hosts" yaml:"remote_hosts"`
	RemotePath     string            `toml:"remote_upkeep_path" yaml:"remote_upkeep_path"`
	SSHArguments   string            `toml:"ssh_arguments" yaml:"ssh_arguments"`
	GitRepos       []string          `toml:"git_repos" yaml:"git_repos"`
	Cleanup        bool              `toml:"cleanup" yaml:"cleanup"`
	NoRetry        bool              `toml:"no_retry" yaml:"no_retry"`
	NoSelfUpdate   bool              `toml:"no_self_update" yaml:"no_self_update"`
	BrewGreedy     bool              `toml:"brew_cask_greedy" yaml:"brew_cask_greedy"`
	PreCommands    map[string]string `toml:"pre_commands" yaml:"pre_commands"`
	Commands       map[string]string `toml:"commands" yaml:"commands"`
	PostCommands   map[string]string `toml:"post_commands" yaml:"post_commands"`
}

// Config is a validated configuration ready for the engine.
type Config struct {
	file     File
	disabled map[string]bool
	ignored  map[string]bool
}

// New wraps a parsed file after validation.
func New(file File) (*Config, error) {
	if err := validate(file); err != nil {
		return nil, err
	}

	disabled := make(map[string]bool, len(file.Disable))
	for _, name := range file.Disable {
		disabled[name] = true
	}
	ignored := make(map[string]bool, len(file.IgnoreFailures))
	for _, name := range file.IgnoreFailures {
		ignored[name] = true
	}

	return &Config{file: file, disabled: disabled, ignored: ignored}, nil
}

// Default returns an empty, valid configuration.
func Default() *Config {
	cfg, _ := New(File{})
	return cfg
}

// Disabled reports whether the named step is disabled.
func (c *Config) Disabled(name string) bool {
	return c.disabled[name]
}

// IgnoreFailure reports whether a failure of the named step should be
// recorded as Ignored instead of Failed.
func (c *Config) IgnoreFailure(name string) bool {
	return c.ignored[name]
}

// RunInTmux reports whether the run should relaunch inside tmux.
func (c *Config) RunInTmux() bool {
	return c.file.RunInTmux
}

// TmuxArguments returns extra arguments for tmux new-session.
func (c *Config) TmuxArguments() string {
	return c.file.TmuxArguments
}

// RemoteHosts returns the configured remote hosts in list order.
// Duplicates are preserved; each occurrence is a separate leg.
func (c *Config) RemoteHosts() []string {
	return c.file.RemoteHosts
}

// RemotePath returns the upkeep binary path used on remote hosts.
func (c *Config) RemotePath() string {
	if c.file.RemotePath == "" {
		return "upkeep"
	}
	return c.file.RemotePath
}

// SSHArguments returns extra arguments for the ssh invocation.
func (c *Config) SSHArguments() string {
	return c.file.SSHArguments
}

// GitRepos returns configured repository globs for the git step.
func (c *Config) GitRepos() []string {
	return c.file.GitRepos
}

// DuplicateHosts returns remote hosts listed more than once.
func (c *Config) DuplicateHosts() []string {
	return DuplicateHosts(c.file)
}

// Cleanup reports whether providers should run post-upgrade cleanup.
func (c *Config) Cleanup() bool {
	return c.file.Cleanup
}

// NoRetry reports whether retry prompts are disabled by configuration.
func (c *Config) NoRetry() bool {
	return c.file.NoRetry
}

// NoSelfUpdate reports whether self-update is disabled by configuration.
func (c *Config) NoSelfUpdate() bool {
	return c.file.NoSelfUpdate
}

// BrewCaskGreedy reports whether brew cask upgrades pass --greedy.
func (c *Config) BrewCaskGreedy() bool {
	return c.file.BrewGreedy
}

// PreCommands returns the gating commands in deterministic name order.
func (c *Config) PreCommands() []NamedCommand {
	return sortedCommands(c.file.PreCommands)
}

// CustomCommands returns the user commands in deterministic name order.
func (c *Config) CustomCommands() []NamedCommand {
	return sortedCommands(c.file.Commands)
}

// PostCommands returns the after-run commands in deterministic name order.
func (c *Config) PostCommands() []NamedCommand {
	return sortedCommands(c.file.PostCommands)
}

// sortedCommands flattens a name->command table into a slice ordered
// by name, so runs are reproducible regardless of decode order.
func sortedCommands(m map[string]string) []NamedCommand {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]NamedCommand, 0, len(names))
	for _, name := range names {
		out = append(out, NamedCommand{Name: name, Command: m[name]})
	}
	return out
}
