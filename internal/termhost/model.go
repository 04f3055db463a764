package termhost

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("241"))

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const defaultMaxLogLines = 500

var _ tea.Model = (*Model)(nil)

// Model is the bubbletea model of the demo: the current viewer's window on
// top, a log pane below and a command line at the bottom.
type Model struct {
	session     *Session
	viewport    viewport.Model
	textInput   textinput.Model
	logs        []string
	logMutex    sync.Mutex
	maxLogLines int
	current     int
	ready       bool
	quitting    bool
	width       int
	height      int
}

// NewModel creates a Model driving session.
func NewModel(session *Session, maxLogLines int) *Model {
	ti := textinput.New()
	ti.Placeholder = "type a command, e.g. set 4 diamond 3"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	if maxLogLines <= 0 {
		maxLogLines = defaultMaxLogLines
	}
	return &Model{
		session:     session,
		textInput:   ti,
		maxLogLines: maxLogLines,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// screenHeight is the number of lines used above the log pane.
func (m *Model) screenHeight() int {
	return lipgloss.Height(m.renderScreen()) + 1
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()

		case tea.KeyTab:
			m.current = (m.current + 1) % len(m.session.Viewers())
			m.resize()
			return m, nil

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.SetValue("")
			if input == "" {
				return m, nil
			}
			m.AddLog(inputStyle.Render("> " + input))
			if quit := m.run(input); quit {
				return m, m.quit()
			}
			m.refreshLogs()
			m.resize()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 0)
			m.ready = true
		}
		m.resize()
		m.viewport.SetContent(m.renderLogs())
		m.viewport.GotoBottom()
		m.textInput.Width = msg.Width - 4

	case LogMsg:
		m.refreshLogs()
		return m, nil

	case RedrawMsg:
		m.resize()
		return m, nil
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// run executes one input line and reports whether the program should quit.
func (m *Model) run(input string) bool {
	c, err := Parse(input)
	if err != nil {
		m.AddLog("error: " + err.Error())
		return false
	}
	switch c.Name {
	case "quit":
		return true
	case "view":
		for i, name := range m.session.Viewers() {
			if name == c.Args[0] {
				m.current = i
				return false
			}
		}
		if _, err := m.session.Window(c.Args[0]); err != nil {
			m.AddLog("error: " + err.Error())
		}
		return false
	}
	out, err := m.session.Exec(c)
	if err != nil {
		m.AddLog("error: " + err.Error())
		return false
	}
	m.AddLog(out)
	return false
}

func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		if err := m.session.Close(); err != nil {
			m.AddLog("error: " + err.Error())
		}
	}
	return tea.Quit
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-m.screenHeight()-3, 1)
}

func (m *Model) refreshLogs() {
	if !m.ready {
		return
	}
	// do not scroll if not at bottom, to prevent flickering
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderLogs())
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// CurrentViewer returns the name of the viewer whose window is displayed.
func (m *Model) CurrentViewer() string {
	return m.session.Viewers()[m.current]
}

func (m *Model) renderTabs() string {
	var tabs []string
	for i, name := range m.session.Viewers() {
		if i == m.current {
			tabs = append(tabs, activeTabStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderScreen() string {
	return m.renderTabs() + "\n" + m.session.Render(m.CurrentViewer())
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf("invui demo - %d slots shared by %d viewers",
		m.session.Inventory.Size(), len(m.session.Viewers())))

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		title,
		m.renderScreen(),
		m.viewport.View(),
		inputStyle.Render("> "+m.textInput.View()),
		helpStyle.Render("Enter: run • Tab: next viewer • help: commands • Ctrl+C/Esc: quit"),
	)
}

// AddLog appends a line to the log pane.
func (m *Model) AddLog(msg string) {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()
	m.logs = append(m.logs, msg)

	// trim logs
	if len(m.logs) > m.maxLogLines {
		m.logs = m.logs[len(m.logs)-m.maxLogLines:]
	}
}

// Logs returns a copy of the log lines.
func (m *Model) Logs() []string {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()
	return append([]string(nil), m.logs...)
}

func (m *Model) renderLogs() string {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()
	return strings.Join(m.logs, "\n")
}

// LogMsg tells the program that log lines were added.
type LogMsg struct{}

// RedrawMsg tells the program that a screen changed outside of Update.
type RedrawMsg struct{}

// Writer is an io.Writer that appends to the log pane of a Model.
type Writer struct {
	model   *Model
	program *tea.Program
}

// NewWriter creates a Writer for model. program may be nil.
func NewWriter(model *Model, program *tea.Program) *Writer {
	return &Writer{model: model, program: program}
}

// Write implements io.Writer. Lines are stored synchronously; the program
// is notified asynchronously since Write may be called from inside Update.
func (w *Writer) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line != "" {
			w.model.AddLog(line)
		}
	}
	if w.program != nil {
		go w.program.Send(LogMsg{})
	}
	return len(p), nil
}

// Start creates the program for session and returns it together with a
// writer for the session's logger.
func Start(session *Session, maxLogLines int) (*tea.Program, io.Writer) {
	m := NewModel(session, maxLogLines)
	p := tea.NewProgram(m, tea.WithAltScreen())
	session.Host.OnChange(func(uuid.UUID) {
		go p.Send(RedrawMsg{})
	})
	return p, NewWriter(m, p)
}
