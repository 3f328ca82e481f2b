package npm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upkeep-sh/upkeep/internal/adapters/logging"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/testutil/mocks"
)

func TestStep_SkipsWhenRootUnresolvable(t *testing.T) {
	probe := mocks.NewCommandRunner()
	probe.AddResult("npm", []string{"root", "-g"},
		ports.CommandResult{ExitCode: 1, Stderr: "npm ERR! missing prefix"})
	rc := engine.NewRunContext(context.Background(), logging.NewNopLogger(), probe, mocks.NewExecutor())

	err := NewStep().Run(rc)
	require.Error(t, err)
	assert.True(t, engine.IsSkip(err))
}

func TestStep_UpdatesGlobalPackages(t *testing.T) {
	probe := mocks.NewCommandRunner()
	probe.AddResult("npm", []string{"root", "-g"},
		ports.CommandResult{ExitCode: 0, Stdout: "/usr/local/lib/node_modules\n"})
	exec := mocks.NewExecutor()
	rc := engine.NewRunContext(context.Background(), logging.NewNopLogger(), probe, exec)

	require.NoError(t, NewStep().Run(rc))
	executed := exec.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, []string{"update", "--global"}, executed[0].Args)
}
