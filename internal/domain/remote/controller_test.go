package remote

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upkeep-sh/upkeep/internal/adapters/logging"
)

// fakeTransport records invocations and fails scripted hosts.
type fakeTransport struct {
	mu      sync.Mutex
	invoked []string
	fail    map[string]error
}

func (t *fakeTransport) Invoke(_ context.Context, host Host, _ string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.invoked = append(t.invoked, host.Name)
	return t.fail[host.Name]
}

func newController(t *fakeTransport) *Controller {
	return NewController(t, logging.NewNopLogger(), &bytes.Buffer{})
}

func TestController_HostListOrder(t *testing.T) {
	transport := &fakeTransport{}
	results := newController(transport).Run(context.Background(), Options{
		Hosts: []string{"alpha", "beta", "gamma"},
	})

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, transport.invoked)
	require.Len(t, results, 3)
}

func TestController_FailingLegNeverBlocksLaterLegs(t *testing.T) {
	transport := &fakeTransport{fail: map[string]error{"beta": errors.New("connection refused")}}
	results := newController(transport).Run(context.Background(), Options{
		Hosts: []string{"alpha", "beta", "gamma"},
	})

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, transport.invoked)
	require.Len(t, results, 3)
	assert.True(t, results[0].Succeeded())
	assert.False(t, results[1].Succeeded())
	assert.True(t, results[2].Succeeded())
}

func TestController_LimitSelectsSilently(t *testing.T) {
	transport := &fakeTransport{}
	results := newController(transport).Run(context.Background(), Options{
		Hosts: []string{"alpha", "beta", "gamma"},
		Limit: map[string]bool{"beta": true},
	})

	assert.Equal(t, []string{"beta"}, transport.invoked)
	require.Len(t, results, 1, "unselected hosts are omitted, not recorded")
	assert.Equal(t, "beta", results[0].Host)
}

func TestController_DuplicateHostsRunTwice(t *testing.T) {
	transport := &fakeTransport{}
	results := newController(transport).Run(context.Background(), Options{
		Hosts: []string{"alpha", "alpha"},
	})

	assert.Equal(t, []string{"alpha", "alpha"}, transport.invoked)
	assert.Len(t, results, 2)
}

func TestController_DryRunNeverConnects(t *testing.T) {
	transport := &fakeTransport{}
	out := &bytes.Buffer{}
	controller := NewController(transport, logging.NewNopLogger(), out)

	results := controller.Run(context.Background(), Options{
		Hosts:  []string{"alpha"},
		DryRun: true,
	})

	assert.Empty(t, transport.invoked)
	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded())
	assert.Contains(t, out.String(), "Dry running remote")
}

func TestController_RemoteCommandForcesNonInteractive(t *testing.T) {
	controller := newController(&fakeTransport{})
	command := controller.remoteCommand(ParseHost("admin@web1:2222"), Options{RemotePath: "/usr/local/bin/upkeep"})

	assert.Contains(t, command, "UPKEEP_PREFIX=web1")
	assert.Contains(t, command, "/usr/local/bin/upkeep")
	assert.Contains(t, command, "--no-retry")
	assert.Contains(t, command, "--yes")
}

func TestParseHost(t *testing.T) {
	tests := []struct {
		spec string
		want Host
	}{
		{"web1", Host{Name: "web1", Port: 22}},
		{"admin@web1", Host{User: "admin", Name: "web1", Port: 22}},
		{"admin@web1:2222", Host{User: "admin", Name: "web1", Port: 2222}},
		{"web1:9", Host{Name: "web1", Port: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got := ParseHost(tt.spec)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.spec, got.String())
		})
	}
}
