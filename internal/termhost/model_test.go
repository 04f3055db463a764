package termhost

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(newTestSession(t, testConfig()), 0)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func enter(m *Model, line string) tea.Cmd {
	m.textInput.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModelRunsCommands(t *testing.T) {
	m := newTestModel(t)

	enter(m, "set 4 diamond")
	logs := m.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "> set 4 diamond", ansi.Strip(logs[0]))
	assert.Equal(t, "slot 4 = diamond x1", logs[1])
	assert.Empty(t, m.textInput.Value())

	enter(m, "sett 4 diamond")
	logs = m.Logs()
	assert.Contains(t, logs[len(logs)-1], `error: unknown command "sett", did you mean "set"?`)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "diamond")
	assert.Contains(t, view, "[alice]")
}

func TestModelSwitchesViewer(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "alice", m.CurrentViewer())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "bob", m.CurrentViewer())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "alice", m.CurrentViewer())

	enter(m, "view bob")
	assert.Equal(t, "bob", m.CurrentViewer())
	assert.Contains(t, ansi.Strip(m.View()), "[bob]")

	enter(m, "view bobb")
	logs := m.Logs()
	assert.Contains(t, logs[len(logs)-1], `did you mean "bob"`)
	assert.Equal(t, "bob", m.CurrentViewer())
}

func TestModelQuitRemovesWindows(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.session.Manager.Windows(), 2)

	cmd := enter(m, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.session.Manager.Windows())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelTrimsLogs(t *testing.T) {
	m := NewModel(newTestSession(t, testConfig()), 3)
	for i := range 5 {
		m.AddLog(fmt.Sprintf("line %d", i))
	}
	assert.Equal(t, []string{"line 2", "line 3", "line 4"}, m.Logs())
}

func TestWriterSplitsLines(t *testing.T) {
	m := NewModel(newTestSession(t, testConfig()), 0)
	w := NewWriter(m, nil)

	n, err := w.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	assert.Equal(t, []string{"first", "second"}, m.Logs())
}

func TestModelBeforeSize(t *testing.T) {
	m := NewModel(newTestSession(t, testConfig()), 0)
	assert.Equal(t, "Initializing...", m.View())
}
