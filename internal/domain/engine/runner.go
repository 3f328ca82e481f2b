package engine

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"
	"github.com/upkeep-sh/upkeep/internal/ports"
)

// Step runner states.
const (
	StatePending    = "pending"
	StateEvaluating = "evaluating"
	StateSkipped    = "skipped"
	StateRunning    = "running"
	StateFailedAsk  = "failed-ask"
	StateSucceeded  = "succeeded"
	StateFailed     = "failed"
)

// Step runner events.
const (
	EventEvaluate = "EVALUATE"
	EventSkip     = "SKIP"
	EventRun      = "RUN"
	EventSucceed  = "SUCCEED"
	EventFail     = "FAIL"
	EventRetry    = "RETRY"
	EventAccept   = "ACCEPT"
)

// RetryPrompter decides what happens after a step failure. Interactive
// implementations ask the user; headless ones always accept.
type RetryPrompter interface {
	// ShouldRetry reports whether the named step should run again.
	ShouldRetry(step string, failure error) bool
}

// RetryPrompterFunc adapts a function to the RetryPrompter interface.
type RetryPrompterFunc func(step string, failure error) bool

// ShouldRetry calls f.
func (f RetryPrompterFunc) ShouldRetry(step string, failure error) bool {
	return f(step, failure)
}

// NeverRetry accepts every failure without asking. Used for
// non-interactive runs and as the substitute in headless tests.
var NeverRetry RetryPrompter = RetryPrompterFunc(func(string, error) bool {
	return false
})

// stepState is the statekit context for one step execution.
type stepState struct {
	Attempts int
}

// StepRunner executes one step at a time: gating, execution,
// interactive retry, and terminal-outcome derivation.
type StepRunner struct {
	prompt      RetryPrompter
	interactive bool
	ignored     func(step string) bool
	onRun       func(step string)
}

// NewStepRunner creates a StepRunner. When interactive is false, a
// failing step transitions straight to Failed with no prompt.
func NewStepRunner(prompt RetryPrompter, interactive bool, ignored func(step string) bool) *StepRunner {
	if prompt == nil {
		prompt = NeverRetry
	}
	if ignored == nil {
		ignored = func(string) bool { return false }
	}
	return &StepRunner{prompt: prompt, interactive: interactive, ignored: ignored}
}

// OnRun registers a hook invoked each time a step attempt starts,
// including retries. Used to frame the step's output.
func (r *StepRunner) OnRun(fn func(step string)) {
	r.onRun = fn
}

// buildMachine constructs the per-step state machine. Terminal states
// are succeeded, failed, and skipped; exactly one of them is reached.
func buildMachine() (*statekit.Interpreter[stepState], error) {
	machine, err := statekit.NewMachine[stepState]("upkeep-step").
		WithInitial(StatePending).
		WithContext(stepState{}).
		WithAction("countAttempt", func(s *stepState, _ statekit.Event) {
			s.Attempts++
		}).
		State(StatePending).
		On(EventEvaluate).Target(StateEvaluating).Done().
		State(StateEvaluating).
		On(EventSkip).Target(StateSkipped).
		On(EventRun).Target(StateRunning).Done().
		State(StateRunning).
		OnEntry("countAttempt").
		On(EventSucceed).Target(StateSucceeded).
		On(EventSkip).Target(StateSkipped).
		On(EventFail).Target(StateFailedAsk).
		On(EventAccept).Target(StateFailed).Done().
		State(StateFailedAsk).
		On(EventRetry).Target(StateRunning).
		On(EventAccept).Target(StateFailed).Done().
		State(StateSkipped).Done().
		State(StateSucceeded).Done().
		State(StateFailed).Done().
		Build()
	if err != nil {
		return nil, err
	}
	return statekit.NewInterpreter(machine), nil
}

// Run drives one step to a terminal state. The returned bool reports
// whether the step was considered: steps filtered out by applicability
// or disablement return false and must not be recorded.
func (r *StepRunner) Run(rc *RunContext, step Step, disabled bool) (Outcome, bool, error) {
	interp, err := buildMachine()
	if err != nil {
		return Outcome{}, false, err
	}
	interp.Start()
	defer interp.Stop()

	logger := rc.Logger().With(ports.F("step", step.Name()))

	interp.Send(statekit.Event{Type: EventEvaluate})

	if disabled {
		interp.Send(statekit.Event{Type: EventSkip})
		logger.Debug(rc.Context(), "step disabled by configuration")
		return Outcome{}, false, nil
	}
	if !step.Applies(rc) {
		interp.Send(statekit.Event{Type: EventSkip})
		logger.Debug(rc.Context(), "step not applicable")
		return Outcome{}, false, nil
	}

	interp.Send(statekit.Event{Type: EventRun})

	var failure error
	for interp.State().Value == StateRunning {
		if r.onRun != nil {
			r.onRun(step.Name())
		}
		err := step.Run(rc)

		switch {
		case err == nil:
			interp.Send(statekit.Event{Type: EventSucceed})

		case IsSkip(err):
			interp.Send(statekit.Event{Type: EventSkip})
			failure = err

		case !r.interactive:
			failure = err
			interp.Send(statekit.Event{Type: EventAccept})

		default:
			failure = err
			interp.Send(statekit.Event{Type: EventFail})
			if r.prompt.ShouldRetry(step.Name(), err) {
				logger.Info(rc.Context(), "retrying step")
				interp.Send(statekit.Event{Type: EventRetry})
			} else {
				interp.Send(statekit.Event{Type: EventAccept})
			}
		}
	}

	switch interp.State().Value {
	case StateSucceeded:
		return Succeed(), true, nil
	case StateSkipped:
		reason := "nothing to do"
		var skip *SkipError
		if errors.As(failure, &skip) && skip.Reason != "" {
			reason = skip.Reason
		}
		return SkipOutcome(reason), true, nil
	case StateFailed:
		if r.ignored(step.Name()) {
			return Ignore(failure.Error()), true, nil
		}
		return Fail(failure.Error()), true, nil
	default:
		return Outcome{}, false, fmt.Errorf("step %q ended in non-terminal state %s", step.Name(), interp.State().Value)
	}
}
