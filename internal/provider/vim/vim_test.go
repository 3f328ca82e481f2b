package vim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upkeep-sh/upkeep/internal/adapters/logging"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/provider/providerutil"
	"github.com/upkeep-sh/upkeep/internal/testutil/mocks"
)

func withEditors(t *testing.T, available ...string) {
	t.Helper()
	restore := providerutil.LookPath
	t.Cleanup(func() { providerutil.LookPath = restore })
	providerutil.LookPath = func(name string) (string, error) {
		for _, cmd := range available {
			if cmd == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func homeWith(t *testing.T, parts ...string) string {
	t.Helper()
	home := t.TempDir()
	path := filepath.Join(append([]string{home}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("\" placeholder\n"), 0o644))
	return home
}

func newTestContext(exec *mocks.Executor, home string) *engine.RunContext {
	rc := engine.NewRunContext(context.Background(), logging.NewNopLogger(), mocks.NewCommandRunner(), exec)
	return rc.WithHomeDir(home)
}

func TestVimStep_AppliesNeedsPlug(t *testing.T) {
	withEditors(t, "vim")

	withPlug := newTestContext(mocks.NewExecutor(), homeWith(t, ".vim", "autoload", "plug.vim"))
	assert.True(t, NewVimStep().Applies(withPlug))

	bare := newTestContext(mocks.NewExecutor(), t.TempDir())
	assert.False(t, NewVimStep().Applies(bare))
}

func TestVimStep_RunsBatchScript(t *testing.T) {
	exec := mocks.NewExecutor()
	rc := newTestContext(exec, t.TempDir())

	require.NoError(t, NewVimStep().Run(rc))
	executed := exec.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, "vim", executed[0].Program)
	assert.Contains(t, executed[0].Script, "PlugUpdate")
}

func TestNeovimStep_PicksFramework(t *testing.T) {
	withEditors(t, "nvim")

	plugHome := homeWith(t, ".local", "share", "nvim", "site", "autoload", "plug.vim")
	exec := mocks.NewExecutor()
	step := NewNeovimStep()
	rc := newTestContext(exec, plugHome)

	assert.True(t, step.Applies(rc))
	require.NoError(t, step.Run(rc))
	assert.Contains(t, exec.Executed()[0].Script, "PlugUpdate")

	packerHome := homeWith(t, ".local", "share", "nvim", "site", "pack", "packer", "marker")
	exec = mocks.NewExecutor()
	rc = newTestContext(exec, packerHome)

	assert.True(t, step.Applies(rc))
	require.NoError(t, step.Run(rc))
	assert.Contains(t, exec.Executed()[0].Script, "PackerSync")
}
