package mocks

import (
	"context"
	"sync"

	"github.com/upkeep-sh/upkeep/internal/ports"
)

// Executor is a thread-safe test double for ports.Executor. Failures
// are scripted per program name; FailOnce entries are consumed by the
// first matching execution, which makes retry paths testable.
type Executor struct {
	mu       sync.Mutex
	failures map[string]error
	once     map[string][]error
	executed []ports.Action
}

// NewExecutor creates a new Executor mock that succeeds by default.
func NewExecutor() *Executor {
	return &Executor{
		failures: make(map[string]error),
		once:     make(map[string][]error),
	}
}

// Fail makes every execution of program return err.
func (m *Executor) Fail(program string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[program] = err
}

// FailOnce queues err for the next execution of program only.
func (m *Executor) FailOnce(program string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.once[program] = append(m.once[program], err)
}

// Execute records the action and returns any scripted failure.
func (m *Executor) Execute(_ context.Context, action ports.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed = append(m.executed, action)

	if queue := m.once[action.Program]; len(queue) > 0 {
		err := queue[0]
		m.once[action.Program] = queue[1:]
		return err
	}
	return m.failures[action.Program]
}

// Executed returns all recorded actions in execution order.
func (m *Executor) Executed() []ports.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.Action, len(m.executed))
	copy(out, m.executed)
	return out
}

// Ensure Executor implements ports.Executor.
var _ ports.Executor = (*Executor)(nil)
