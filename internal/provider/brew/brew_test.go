package brew

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upkeep-sh/upkeep/internal/adapters/logging"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
	"github.com/upkeep-sh/upkeep/internal/testutil/mocks"
)

func withBrewOnPath(t *testing.T, present bool) {
	t.Helper()
	restore := providerutil.LookPath
	t.Cleanup(func() { providerutil.LookPath = restore })
	providerutil.LookPath = func(name string) (string, error) {
		if present && name == "brew" {
			return "/opt/homebrew/bin/brew", nil
		}
		return "", errors.New("not found")
	}
}

func newTestContext(exec *mocks.Executor) *engine.RunContext {
	return engine.NewRunContext(context.Background(), logging.NewNopLogger(), mocks.NewCommandRunner(), exec)
}

func TestFormulaStep_Applies(t *testing.T) {
	withBrewOnPath(t, true)
	assert.True(t, NewFormulaStep().Applies(newTestContext(mocks.NewExecutor())))

	withBrewOnPath(t, false)
	assert.False(t, NewFormulaStep().Applies(newTestContext(mocks.NewExecutor())))
}

func TestFormulaStep_UpdatesThenUpgrades(t *testing.T) {
	exec := mocks.NewExecutor()
	require.NoError(t, NewFormulaStep().Run(newTestContext(exec)))

	executed := exec.Executed()
	require.Len(t, executed, 2)
	assert.Equal(t, []string{"update"}, executed[0].Args)
	assert.Equal(t, []string{"upgrade", "--formula"}, executed[1].Args)
}

func TestFormulaStep_CleanupRunsWhenRequested(t *testing.T) {
	exec := mocks.NewExecutor()
	rc := newTestContext(exec).WithCleanup(true)
	require.NoError(t, NewFormulaStep().Run(rc))

	executed := exec.Executed()
	require.Len(t, executed, 3)
	assert.Equal(t, []string{"cleanup"}, executed[2].Args)
}

func TestFormulaStep_UpdateFailureStopsStep(t *testing.T) {
	exec := mocks.NewExecutor()
	exec.FailOnce("brew", errors.New("index fetch failed"))

	err := NewFormulaStep().Run(newTestContext(exec))
	assert.Error(t, err)
	assert.Len(t, exec.Executed(), 1, "upgrade must not run after a failed update")
}

func TestCaskStep_GreedyFlag(t *testing.T) {
	exec := mocks.NewExecutor()
	require.NoError(t, NewCaskStep(true).Run(newTestContext(exec)))

	executed := exec.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, []string{"upgrade", "--cask", "--greedy"}, executed[0].Args)

	exec = mocks.NewExecutor()
	require.NoError(t, NewCaskStep(false).Run(newTestContext(exec)))
	assert.Equal(t, []string{"upgrade", "--cask"}, exec.Executed()[0].Args)
}
