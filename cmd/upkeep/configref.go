package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const sampleConfig = `# ~/.config/upkeep/upkeep.toml

# Relaunch the run inside a fresh tmux session.
# run_in_tmux = true
# tmux_arguments = "-d"

# Steps to leave out entirely.
# disable = ["Homebrew Cask"]

# Steps whose failures should not fail the run.
# ignore_failures = ["Mac App Store"]

# Hosts to update over SSH before the local run. Each entry is one leg;
# "user@host:port" is accepted.
# remote_hosts = ["admin@web1", "web2:2222"]
# remote_upkeep_path = "/usr/local/bin/upkeep"
# ssh_arguments is accepted but not used by the built-in SSH client yet.
# ssh_arguments = "-o ConnectTimeout=5"

# Local repositories to fast-forward.
# git_repos = ["~/dotfiles", "~/src/notes"]

# cleanup = true
# no_retry = true
# no_self_update = true
# brew_cask_greedy = true

# Commands that must succeed before any step runs.
# [pre_commands]
# "unlock sudo" = "sudo -v"

# Extra update steps, run after the built-in ones in name order.
# [commands]
# "Flatpak" = "flatpak update -y"

# Commands run after the summary. Failures are logged, never fatal.
# [post_commands]
# "notify" = "notify-send 'upkeep finished'"
`

var configRefCmd = &cobra.Command{
	Use:   "config-reference",
	Short: "Print an annotated sample configuration",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), sampleConfig)
	},
}
