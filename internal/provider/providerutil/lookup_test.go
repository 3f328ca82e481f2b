package providerutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCommand(t *testing.T) {
	restore := LookPath
	defer func() { LookPath = restore }()

	LookPath = func(name string) (string, error) {
		if name == "brew" {
			return "/opt/homebrew/bin/brew", nil
		}
		return "", errors.New("not found")
	}

	assert.True(t, HasCommand("brew"))
	assert.False(t, HasCommand("npm"))
}

func TestSudo(t *testing.T) {
	restore := LookPath
	defer func() { LookPath = restore }()

	LookPath = func(name string) (string, error) {
		if name == "doas" {
			return "/usr/bin/doas", nil
		}
		return "", errors.New("not found")
	}
	assert.Equal(t, "doas", Sudo())

	LookPath = func(string) (string, error) { return "", errors.New("not found") }
	assert.Empty(t, Sudo())
}
