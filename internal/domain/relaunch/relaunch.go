// Package relaunch re-executes the tool inside a fresh tmux session
// and respawns the process after a self-update. Both happen before any
// remote leg or local step, and a spawned process never re-checks the
// condition that spawned it.
package relaunch

import (
	"context"
	"errors"
	"strings"

	"github.com/upkeep-sh/upkeep/internal/ports"
)

const (
	// InsideTmuxEnv marks a process already relaunched into tmux.
	InsideTmuxEnv = "UPKEEP_INSIDE_TMUX"
	// NoSelfUpdateEnv marks a process respawned after a self-update.
	NoSelfUpdateEnv = "UPKEEP_NO_SELF_UPDATE"

	sessionName = "upkeep"
)

// Getenv is the environment lookup used for relaunch guards.
type Getenv func(key string) string

// ShouldRelaunchTmux reports whether the run should move into a new
// tmux session: it was requested and this process is not already
// inside one (its own or any tmux).
func ShouldRelaunchTmux(requested bool, getenv Getenv) bool {
	if !requested {
		return false
	}
	if getenv(InsideTmuxEnv) != "" {
		return false
	}
	return getenv("TMUX") == ""
}

// ShouldSelfUpdate reports whether the self-update check may run.
func ShouldSelfUpdate(disabled bool, getenv Getenv) bool {
	return !disabled && getenv(NoSelfUpdateEnv) == ""
}

// TmuxAction builds the tmux invocation that owns the actual run. The
// inner command carries the guard variable so it proceeds in-process.
func TmuxAction(argv []string, extraArgs string) ports.Action {
	inner := "env " + InsideTmuxEnv + "=1 " + strings.Join(argv, " ")

	args := []string{"new-session", "-s", sessionName, "-n", sessionName}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}
	args = append(args, inner, ";", "set", "remain-on-exit", "on")

	return ports.Action{Program: "tmux", Args: args}
}

// RespawnAction builds the replacement invocation used after a
// self-update: same binary path, same arguments, plus the guard that
// stops the fresh process from updating itself again.
func RespawnAction(binary string, argv []string) ports.Action {
	var args []string
	if len(argv) > 1 {
		args = append(args, argv[1:]...)
	}
	return ports.Action{
		Program: binary,
		Args:    args,
		Env:     []string{NoSelfUpdateEnv + "=1"},
	}
}

// Run hands control to the replacement process and reports the exit
// code the outer process must adopt. The outer invocation performs no
// further work after this returns.
func Run(ctx context.Context, exec ports.Executor, action ports.Action) int {
	err := exec.Execute(ctx, action)
	if err == nil {
		return 0
	}
	var exit *ports.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}
