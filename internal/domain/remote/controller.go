package remote

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/upkeep-sh/upkeep/internal/ports"
)

// LegResult is the independent outcome of one remote invocation. Legs
// never contribute entries to the local step report; they are rendered
// as a preface before it.
type LegResult struct {
	Host string
	Err  error
}

// Succeeded reports whether the leg completed cleanly.
func (r LegResult) Succeeded() bool {
	return r.Err == nil
}

// Options configures a fan-out pass.
type Options struct {
	// Hosts is the configured host list, in order. Duplicates run as
	// separate legs.
	Hosts []string
	// Limit, when non-empty, selects the hosts to contact. Hosts not
	// in the limit are silently omitted, not recorded as skipped.
	Limit map[string]bool
	// RemotePath is the upkeep binary on the remote side.
	RemotePath string
	// ExtraEnv is appended verbatim to the env line of the remote
	// command, for configured pass-through variables.
	ExtraEnv string
	// DryRun prints the remote command instead of connecting.
	DryRun bool
}

// Controller runs the whole tool on each selected host, sequentially,
// before the local run. A failing leg never prevents subsequent legs
// or the local run.
type Controller struct {
	transport Transport
	logger    ports.Logger
	out       io.Writer
}

// NewController creates a Controller.
func NewController(transport Transport, logger ports.Logger, out io.Writer) *Controller {
	return &Controller{transport: transport, logger: logger, out: out}
}

// Run contacts the selected hosts in list order and collects one
// result per leg.
func (c *Controller) Run(ctx context.Context, opts Options) []LegResult {
	var results []LegResult

	for _, spec := range opts.Hosts {
		if len(opts.Limit) > 0 && !opts.Limit[spec] {
			continue
		}

		host := ParseHost(spec)
		command := c.remoteCommand(host, opts)

		if opts.DryRun {
			_, _ = fmt.Fprintf(c.out, "Dry running remote: ssh %s %s\n", host, command)
			results = append(results, LegResult{Host: spec})
			continue
		}

		c.logger.Info(ctx, "connecting to remote host", ports.F("host", spec))
		_, _ = fmt.Fprintf(c.out, "Connecting to %s...\n", host)

		err := c.transport.Invoke(ctx, host, command)
		if err != nil {
			c.logger.Warn(ctx, "remote leg failed",
				ports.F("host", spec),
				ports.F("error", err))
		}
		results = append(results, LegResult{Host: spec, Err: err})
	}

	return results
}

// remoteCommand builds the command executed on the far side. The
// remote run is forced non-interactive; its prompt would be unreachable.
func (c *Controller) remoteCommand(host Host, opts Options) string {
	path := opts.RemotePath
	if path == "" {
		path = "upkeep"
	}

	var b strings.Builder
	b.WriteString("env UPKEEP_PREFIX=")
	b.WriteString(host.Name)
	if opts.ExtraEnv != "" {
		b.WriteString(" ")
		b.WriteString(opts.ExtraEnv)
	}
	b.WriteString(" ")
	b.WriteString(path)
	b.WriteString(" --no-retry --yes")
	return b.String()
}
