package system

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

func writeOSRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func withoutSudo(t *testing.T) {
	t.Helper()
	restore := providerutil.LookPath
	t.Cleanup(func() { providerutil.LookPath = restore })
	providerutil.LookPath = func(string) (string, error) { return "", errors.New("not found") }
}

func newTestContext(exec *mocks.Executor) *engine.RunContext {
	return engine.NewRunContext(context.Background(), logging.NewNopLogger(), mocks.NewCommandRunner(), exec)
}

func TestDetectDistro(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Distro
	}{
		{"ubuntu", "ID=ubuntu\nID_LIKE=debian\n", Debian},
		{"quoted pop", "ID=pop\nID_LIKE=\"ubuntu debian\"\n", Debian},
		{"fedora", "ID=fedora\n", Fedora},
		{"rocky via id_like", "ID=rocky\nID_LIKE=\"rhel centos fedora\"\n", Fedora},
		{"arch", "ID=arch\n", Arch},
		{"unknown", "ID=gentoo\n", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDistro(writeOSRelease(t, tt.content)))
		})
	}
}

func TestDetectDistro_MissingFile(t *testing.T) {
	assert.Equal(t, Unknown, DetectDistro(filepath.Join(t.TempDir(), "absent")))
}

func TestStep_DebianRunsUpdateThenDistUpgrade(t *testing.T) {
	withoutSudo(t)
	step := &Step{goos: "linux", releasePath: writeOSRelease(t, "ID=debian\n")}

	exec := mocks.NewExecutor()
	require.NoError(t, step.Run(newTestContext(exec)))

	executed := exec.Executed()
	require.Len(t, executed, 2)
	assert.Equal(t, "apt-get", executed[0].Program)
	assert.Equal(t, []string{"update"}, executed[0].Args)
	assert.Equal(t, []string{"dist-upgrade"}, executed[1].Args)
}

func TestStep_EscalatesWithSudo(t *testing.T) {
	restore := providerutil.LookPath
	t.Cleanup(func() { providerutil.LookPath = restore })
	providerutil.LookPath = func(name string) (string, error) {
		if name == "sudo" {
			return "/usr/bin/sudo", nil
		}
		return "", errors.New("not found")
	}

	step := &Step{goos: "linux", releasePath: writeOSRelease(t, "ID=arch\n")}
	exec := mocks.NewExecutor()
	require.NoError(t, step.Run(newTestContext(exec)))

	executed := exec.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, "sudo", executed[0].Program)
	assert.Equal(t, []string{"pacman", "-Syu"}, executed[0].Args)
}

func TestStep_DebianCleanupAutoremoves(t *testing.T) {
	withoutSudo(t)
	step := &Step{goos: "linux", releasePath: writeOSRelease(t, "ID=debian\n")}

	exec := mocks.NewExecutor()
	require.NoError(t, step.Run(newTestContext(exec).WithCleanup(true)))

	executed := exec.Executed()
	require.Len(t, executed, 3)
	assert.Equal(t, []string{"autoremove"}, executed[2].Args)
}

func TestStep_SuseRunsZypper(t *testing.T) {
	withoutSudo(t)
	step := &Step{goos: "linux", releasePath: writeOSRelease(t, "ID=opensuse-tumbleweed\n")}

	exec := mocks.NewExecutor()
	require.NoError(t, step.Run(newTestContext(exec)))

	executed := exec.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, "zypper", executed[0].Program)
}

func TestStep_AppliesOnlyOnLinuxWithKnownDistro(t *testing.T) {
	rc := newTestContext(mocks.NewExecutor())
	fedora := writeOSRelease(t, "ID=fedora\n")

	assert.True(t, (&Step{goos: "linux", releasePath: fedora}).Applies(rc))
	assert.False(t, (&Step{goos: "darwin", releasePath: fedora}).Applies(rc))
	assert.False(t, (&Step{goos: "linux", releasePath: writeOSRelease(t, "ID=gentoo\n")}).Applies(rc))
}

func TestFinalStep_AppliesNeedsNeedrestart(t *testing.T) {
	restore := providerutil.LookPath
	t.Cleanup(func() { providerutil.LookPath = restore })
	providerutil.LookPath = func(name string) (string, error) {
		if name == "needrestart" {
			return "/usr/sbin/needrestart", nil
		}
		return "", errors.New("not found")
	}

	rc := newTestContext(mocks.NewExecutor())
	assert.True(t, (&FinalStep{goos: "linux"}).Applies(rc))
	assert.False(t, (&FinalStep{goos: "darwin"}).Applies(rc))
}
