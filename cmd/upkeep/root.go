package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/upkeep-sh/upkeep/internal/adapters/command"
	"github.com/upkeep-sh/upkeep/internal/adapters/logging"
	"github.com/upkeep-sh/upkeep/internal/domain/config"
	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/domain/registry"
	"github.com/upkeep-sh/upkeep/internal/domain/relaunch"
	"github.com/upkeep-sh/upkeep/internal/domain/remote"
	"github.com/upkeep-sh/upkeep/internal/ports"
	"github.com/upkeep-sh/upkeep/internal/selfupdate"
	"github.com/upkeep-sh/upkeep/internal/tui"
)

// releaseRepo is the GitHub repository checked for new releases.
const releaseRepo = "upkeep-sh/upkeep"

var (
	// Global flags
	cfgFile         string
	verbose         bool
	dryRun          bool
	noRetry         bool
	yesFlag         bool
	cleanupFlag     bool
	tmuxFlag        bool
	noSelfUpdate    bool
	disableFlag     []string
	onlyFlag        []string
	remoteHostLimit []string
)

// exitCode carries the code adopted from a relaunched or respawned
// process; runRoot returning nil otherwise leaves it at zero.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "upkeep",
	Short: "Upgrade everything on this machine, in one go",
	Long: `Upkeep runs every package manager and updater it can find on this
machine, in a fixed order, and reports what happened at the end.

One broken tool never stops the others: each step's outcome is recorded
and the run carries on. Remote hosts listed in the configuration are
updated over SSH before the local run starts.`,
	SilenceErrors: true, // We format errors ourselves
	SilenceUsage:  true, // Don't show usage on error
	RunE:          runRoot,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return engine.ExitCode(err)
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/upkeep/upkeep.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print commands instead of running them")
	rootCmd.Flags().BoolVar(&noRetry, "no-retry", false, "never prompt to retry a failed step")
	rootCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "assume no on every prompt")
	rootCmd.Flags().BoolVar(&cleanupFlag, "cleanup", false, "run package manager cleanup after upgrading")
	rootCmd.Flags().BoolVar(&tmuxFlag, "tmux", false, "relaunch the run inside a new tmux session")
	rootCmd.Flags().BoolVar(&noSelfUpdate, "no-self-update", false, "skip the self-update check")
	rootCmd.Flags().StringSliceVar(&disableFlag, "disable", nil, "step names to disable for this run")
	rootCmd.Flags().StringSliceVar(&onlyFlag, "only", nil, "run only the named steps")
	rootCmd.Flags().StringSliceVar(&remoteHostLimit, "remote-host-limit", nil, "contact only these configured remote hosts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(configRefCmd)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewLoader().Load(cfgFile)
	if err != nil {
		return err
	}
	for _, host := range cfg.DuplicateHosts() {
		fmt.Fprintf(os.Stderr, "Warning: remote host %q is listed more than once and will run once per entry\n", host)
	}

	var logger ports.Logger = logging.NewConsoleLogger(logging.WithOutput(os.Stderr))
	if verbose {
		logger.SetLevel(ports.LevelDebug)
	}
	if prefix := os.Getenv("UPKEEP_PREFIX"); prefix != "" {
		logger = logger.With(ports.F("prefix", prefix))
	}

	tty := command.NewTTYExecutor()

	if relaunch.ShouldRelaunchTmux(tmuxFlag || cfg.RunInTmux(), os.Getenv) {
		logger.Info(ctx, "relaunching inside tmux")
		exitCode = relaunch.Run(ctx, tty, relaunch.TmuxAction(os.Args, cfg.TmuxArguments()))
		return nil
	}

	probe := command.NewRealRunner()
	var exec ports.Executor = tty
	if dryRun {
		exec = command.NewDryExecutor(os.Stdout)
	}

	if !dryRun && relaunch.ShouldSelfUpdate(noSelfUpdate || cfg.NoSelfUpdate(), os.Getenv) {
		if code, respawned := selfUpdate(ctx, probe, tty, logger); respawned {
			exitCode = code
			return nil
		}
	}

	renderer := tui.NewRenderer(os.Stdout)

	var legs []remote.LegResult
	if hosts := cfg.RemoteHosts(); len(hosts) > 0 {
		renderer.StepBegin("Remote hosts")
		controller := remote.NewController(remote.NewSSHTransport(), logger, os.Stdout)
		legs = controller.Run(ctx, remote.Options{
			Hosts:      hosts,
			Limit:      nameSet(remoteHostLimit),
			RemotePath: cfg.RemotePath(),
			DryRun:     dryRun,
		})
	}

	interactive := tui.Interactive() && !yesFlag && !noRetry && !cfg.NoRetry() && !dryRun
	var prompt engine.RetryPrompter = engine.NeverRetry
	if interactive {
		prompt = tui.NewRetryPrompt()
	}

	runner := engine.NewStepRunner(prompt, interactive, cfg.IgnoreFailure)
	runner.OnRun(renderer.StepBegin)
	orch := engine.NewOrchestrator(runner, buildGate(cfg))

	home, _ := os.UserHomeDir()
	rc := engine.NewRunContext(ctx, logger, probe, exec).
		WithHomeDir(home).
		WithDryRun(dryRun).
		WithCleanup(cleanupFlag || cfg.Cleanup())

	if err := orch.RunPreCommands(rc, preCommands(cfg)); err != nil {
		return err
	}

	report, err := orch.Run(rc, registry.Steps(cfg))
	if err != nil {
		return err
	}

	renderer.Summary(report, legs)

	// Post-commands run after the summary. A failure marks the run
	// failed but is not a report entry.
	postFailed := false
	for _, post := range cfg.PostCommands() {
		if err := rc.Execute(engine.ShellCommand(post.Command)); err != nil {
			postFailed = true
			logger.Warn(ctx, "post-command failed",
				ports.F("name", post.Name),
				ports.F("error", err.Error()))
		}
	}

	if report.Failed() || postFailed {
		return engine.ErrStepsFailed
	}
	return nil
}

// selfUpdate checks for a newer release and, when one was installed,
// hands the run over to the fresh binary. The returned bool reports
// whether control was handed over.
func selfUpdate(ctx context.Context, probe ports.CommandRunner, tty ports.Executor, logger ports.Logger) (int, bool) {
	updater := selfupdate.NewUpdater(
		selfupdate.NewGitHubSource(probe, releaseRepo),
		selfupdate.NewShellReplacer(tty),
		version,
		logger,
	)

	outcome, err := updater.Check(ctx)
	if err != nil {
		logger.Warn(ctx, "self-update check failed", ports.F("error", err.Error()))
		return 0, false
	}
	if outcome != selfupdate.Upgraded {
		return 0, false
	}

	binary, err := os.Executable()
	if err != nil {
		logger.Warn(ctx, "cannot locate own binary, continuing without respawn",
			ports.F("error", err.Error()))
		return 0, false
	}
	logger.Info(ctx, "respawning updated binary", ports.F("binary", binary))
	return relaunch.Run(ctx, tty, relaunch.RespawnAction(binary, os.Args)), true
}

func buildGate(cfg *config.Config) engine.Gate {
	disabled := nameSet(disableFlag)
	for _, name := range registry.Names(cfg) {
		if cfg.Disabled(name) {
			disabled[name] = true
		}
	}
	return engine.Gate{Disabled: disabled, Only: nameSet(onlyFlag)}
}

func preCommands(cfg *config.Config) []engine.PreCommand {
	var out []engine.PreCommand
	for _, pre := range cfg.PreCommands() {
		out = append(out, engine.PreCommand{Name: pre.Name, Action: engine.ShellCommand(pre.Command)})
	}
	return out
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.ValidationError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
