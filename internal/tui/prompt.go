package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdout is attached to a terminal. When it
// is not, failures are accepted without asking.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RetryPrompt asks the user whether to re-run a failed step. It
// implements the engine's retry decision with a small inline dialog.
type RetryPrompt struct {
	styles Styles
}

// NewRetryPrompt creates a terminal-backed retry prompt.
func NewRetryPrompt() *RetryPrompt {
	return &RetryPrompt{styles: DefaultStyles()}
}

// ShouldRetry blocks on the user's answer. Declining, cancelling, or
// any prompt error accepts the failure.
func (p *RetryPrompt) ShouldRetry(step string, failure error) bool {
	model := newRetryModel(step, failure, p.styles)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := program.Run()
	if err != nil {
		return false
	}
	result, ok := final.(retryModel)
	return ok && result.retry
}

type retryKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

func defaultRetryKeys() retryKeyMap {
	return retryKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "retry"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "enter"),
			key.WithHelp("n", "accept failure"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "q"),
			key.WithHelp("esc", "accept failure"),
		),
	}
}

// retryModel is the inline yes/no dialog shown after a step failure.
// "No" is the default so an accidental enter never loops a broken step.
type retryModel struct {
	step    string
	failure error
	retry   bool
	done    bool
	keys    retryKeyMap
	styles  Styles
}

func newRetryModel(step string, failure error, styles Styles) retryModel {
	return retryModel{
		step:    step,
		failure: failure,
		keys:    defaultRetryKeys(),
		styles:  styles,
	}
}

// Init implements tea.Model.
func (m retryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m retryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.retry = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Cancel):
		m.retry = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m retryModel) View() string {
	if m.done {
		return ""
	}
	line := m.styles.Failed.Render(m.step+" failed") + ": " + m.failure.Error() + "\n"
	line += m.styles.Prompt.Render("Retry? ") +
		m.styles.PromptKey.Render("(y)") + m.styles.Prompt.Render("es/") +
		m.styles.PromptKey.Render("(N)") + m.styles.Prompt.Render("o")
	return line
}
