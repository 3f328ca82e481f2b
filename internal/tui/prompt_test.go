package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pressKey(t *testing.T, model retryModel, runes string) retryModel {
	t.Helper()
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
	next, ok := updated.(retryModel)
	require.True(t, ok)
	return next
}

func TestRetryModel_YesRetries(t *testing.T) {
	model := newRetryModel("npm", errors.New("exit status 1"), DefaultStyles())
	model = pressKey(t, model, "y")

	assert.True(t, model.done)
	assert.True(t, model.retry)
}

func TestRetryModel_NoAcceptsFailure(t *testing.T) {
	model := newRetryModel("npm", errors.New("exit status 1"), DefaultStyles())
	model = pressKey(t, model, "n")

	assert.True(t, model.done)
	assert.False(t, model.retry)
}

func TestRetryModel_EnterDefaultsToNo(t *testing.T) {
	model := newRetryModel("npm", errors.New("exit status 1"), DefaultStyles())
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, ok := updated.(retryModel)
	require.True(t, ok)

	assert.True(t, next.done)
	assert.False(t, next.retry)
}

func TestRetryModel_CancelAcceptsFailure(t *testing.T) {
	model := newRetryModel("npm", errors.New("exit status 1"), DefaultStyles())
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next, ok := updated.(retryModel)
	require.True(t, ok)

	assert.True(t, next.done)
	assert.False(t, next.retry)
}

func TestRetryModel_ViewNamesStepAndKeys(t *testing.T) {
	model := newRetryModel("npm", errors.New("exit status 1"), DefaultStyles())
	view := model.View()

	assert.Contains(t, view, "npm")
	assert.Contains(t, view, "Retry?")
}

func TestRetryModel_ViewEmptyWhenDone(t *testing.T) {
	model := newRetryModel("npm", errors.New("exit status 1"), DefaultStyles())
	model = pressKey(t, model, "y")

	assert.Empty(t, model.View())
}
