package custom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upkeep-sh/upkeep/internal/adapters/logging"
	"github.com/upkeep-sh/upkeep/internal/domain/config"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/testutil/mocks"
)

func TestStep_RunsThroughShell(t *testing.T) {
	exec := mocks.NewExecutor()
	rc := engine.NewRunContext(context.Background(), logging.NewNopLogger(), mocks.NewCommandRunner(), exec)

	step := NewStep(config.NamedCommand{Name: "Flatpak", Command: "flatpak update -y && flatpak uninstall --unused -y"})
	assert.Equal(t, "Flatpak", step.Name())
	assert.True(t, step.Applies(rc))

	require.NoError(t, step.Run(rc))
	executed := exec.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, "sh", executed[0].Program)
	assert.Equal(t, []string{"-c", "flatpak update -y && flatpak uninstall --unused -y"}, executed[0].Args)
}

func TestSteps_PreservesOrder(t *testing.T) {
	steps := Steps([]config.NamedCommand{
		{Name: "a", Command: "true"},
		{Name: "b", Command: "true"},
	})

	require.Len(t, steps, 2)
	assert.Equal(t, "a", steps[0].Name())
	assert.Equal(t, "b", steps[1].Name())
}
