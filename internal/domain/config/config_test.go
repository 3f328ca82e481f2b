package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Valid(t *testing.T) {
	cfg, err := New(File{
		Disable:        []string{"Homebrew"},
		IgnoreFailures: []string{"Mac App Store"},
	})
	require.NoError(t, err)

	assert.True(t, cfg.Disabled("Homebrew"))
	assert.False(t, cfg.Disabled("Cargo"))
	assert.True(t, cfg.IgnoreFailure("Mac App Store"))
}

func TestNew_RejectsEmptyCommand(t *testing.T) {
	_, err := New(File{Commands: map[string]string{"Flatpak": ""}})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "commands", verr.Context)
}

func TestNew_RejectsEmptyHost(t *testing.T) {
	_, err := New(File{RemoteHosts: []string{"web1", ""}})
	require.Error(t, err)
}

func TestConfig_CommandsSortedByName(t *testing.T) {
	cfg, err := New(File{Commands: map[string]string{
		"zsh":     "antidote update",
		"flatpak": "flatpak update -y",
		"micro":   "micro -plugin update",
	}})
	require.NoError(t, err)

	cmds := cfg.CustomCommands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "flatpak", cmds[0].Name)
	assert.Equal(t, "micro", cmds[1].Name)
	assert.Equal(t, "zsh", cmds[2].Name)
}

func TestConfig_RemotePathDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "upkeep", cfg.RemotePath())

	cfg, err := New(File{RemotePath: "/usr/local/bin/upkeep"})
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/upkeep", cfg.RemotePath())
}

func TestConfig_DuplicateHosts(t *testing.T) {
	cfg, err := New(File{RemoteHosts: []string{"web1", "web2", "web1", "web1"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"web1"}, cfg.DuplicateHosts())
	assert.Equal(t, []string{"web1", "web2", "web1", "web1"}, cfg.RemoteHosts(),
		"duplicates stay in the host list; each entry is a leg")
}
