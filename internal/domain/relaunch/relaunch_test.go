package relaunch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/testutil/mocks"
)

func env(pairs map[string]string) Getenv {
	return func(key string) string { return pairs[key] }
}

func TestShouldRelaunchTmux(t *testing.T) {
	tests := []struct {
		name      string
		requested bool
		env       map[string]string
		want      bool
	}{
		{"not requested", false, nil, false},
		{"requested outside tmux", true, nil, true},
		{"already relaunched", true, map[string]string{InsideTmuxEnv: "1"}, false},
		{"inside some tmux", true, map[string]string{"TMUX": "/tmp/tmux-1000/default,123,0"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRelaunchTmux(tt.requested, env(tt.env)))
		})
	}
}

func TestShouldSelfUpdate(t *testing.T) {
	assert.True(t, ShouldSelfUpdate(false, env(nil)))
	assert.False(t, ShouldSelfUpdate(true, env(nil)))
	assert.False(t, ShouldSelfUpdate(false, env(map[string]string{NoSelfUpdateEnv: "1"})),
		"a respawned process must not self-update again")
}

func TestTmuxAction(t *testing.T) {
	action := TmuxAction([]string{"upkeep", "--cleanup"}, "")

	assert.Equal(t, "tmux", action.Program)
	assert.Contains(t, action.Args, "new-session")
	assert.Contains(t, action.Args, "env "+InsideTmuxEnv+"=1 upkeep --cleanup")
	assert.Contains(t, action.Args, "remain-on-exit")
}

func TestRespawnAction(t *testing.T) {
	action := RespawnAction("/usr/local/bin/upkeep", []string{"upkeep", "--dry-run", "-v"})

	assert.Equal(t, "/usr/local/bin/upkeep", action.Program)
	assert.Equal(t, []string{"--dry-run", "-v"}, action.Args)
	assert.Contains(t, action.Env, NoSelfUpdateEnv+"=1")
}

func TestRun_PropagatesExitCode(t *testing.T) {
	exec := mocks.NewExecutor()
	exec.Fail("tmux", &ports.ExitError{Code: 3})

	code := Run(context.Background(), exec, ports.Action{Program: "tmux"})
	assert.Equal(t, 3, code)

	executed := exec.Executed()
	require.Len(t, executed, 1)
}

func TestRun_SuccessIsZero(t *testing.T) {
	exec := mocks.NewExecutor()
	code := Run(context.Background(), exec, ports.Action{Program: "tmux"})
	assert.Equal(t, 0, code)
}
