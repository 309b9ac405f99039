// Package watch implements watch mode: the current exercise is re-run
// whenever a source file is saved, progress advances automatically on
// success, and the list view is one key press away.
package watch

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/app"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/logger"
)

// Outcome reports why watch mode exited.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	// OutcomeList means the user asked for the interactive list; the
	// caller should run a list session and restart watch mode after.
	OutcomeList
)

type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

type runDoneMsg struct {
	output string
	passed bool
}

// Model is the watch mode TUI model
type Model struct {
	state   *app.AppState
	watcher *Watcher

	output   string
	running  bool
	showHint bool
	finished bool
	err      error

	spinner     spinner.Model
	progressBar progress.Model
	help        help.Model
	outcome     Outcome

	width  int
	height int
}

// NewModel creates a new watch model
func NewModel(state *app.AppState, watcher *Watcher) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return &Model{
		state:       state,
		watcher:     watcher,
		running:     true,
		finished:    state.AllDone(),
		spinner:     s,
		progressBar: progress.New(progress.WithDefaultGradient()),
		help:        help.New(),
	}
}

// Outcome is valid once the program has finished.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCurrent(), m.waitForChange(), m.waitForWatchErr())
}

func (m *Model) runCurrent() tea.Cmd {
	ex := m.state.CurrentExercise()
	return func() tea.Msg {
		output, passed := ex.Run(context.Background())
		return runDoneMsg{output: output, passed: passed}
	}
}

// waitForChange returns a command that waits for the next file change.
func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.watcher.Changes()
		return fileChangedMsg{}
	}
}

func (m *Model) waitForWatchErr() tea.Cmd {
	return func() tea.Msg {
		return watchErrMsg{err: <-m.watcher.Errs()}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		barWidth := msg.Width - 4
		if barWidth > 80 {
			barWidth = 80
		}
		if barWidth > 0 {
			m.progressBar.Width = barWidth
		}
		return m, nil
	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case fileChangedMsg:
		m.running = true
		m.output = ""
		m.showHint = false
		return m, tea.Batch(m.runCurrent(), m.waitForChange(), m.spinner.Tick)
	case runDoneMsg:
		return m.handleRunDone(msg)
	case watchErrMsg:
		logger.Error("watcher failed", "err", msg.err)
		m.err = msg.err
		return m, m.waitForWatchErr()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.outcome = OutcomeQuit
		return m, tea.Quit
	case "l":
		m.outcome = OutcomeList
		return m, tea.Quit
	case "h":
		m.showHint = !m.showHint
	case "r":
		if !m.running {
			m.running = true
			m.output = ""
			return m, tea.Batch(m.runCurrent(), m.spinner.Tick)
		}
	case "n":
		if !m.running && m.state.CurrentExercise().Done && !m.state.AllDone() {
			return m, m.advance()
		}
	}
	return m, nil
}

func (m *Model) handleRunDone(msg runDoneMsg) (tea.Model, tea.Cmd) {
	m.running = false
	m.output = msg.output

	if !msg.passed {
		return m, nil
	}

	current := m.state.CurrentIndex()
	if err := m.state.MarkDone(current); err != nil {
		logger.Error("marking exercise done", "err", err)
		m.err = err
		return m, nil
	}

	if m.state.AllDone() {
		m.finished = true
		return m, nil
	}
	return m, m.advance()
}

// advance moves to the next pending exercise and runs it.
func (m *Model) advance() tea.Cmd {
	next, ok := m.state.NextPending(m.state.CurrentIndex())
	if !ok {
		m.finished = true
		return nil
	}
	if err := m.state.SetCurrentIndex(next); err != nil {
		logger.Error("advancing exercise", "err", err)
		m.err = err
		return nil
	}
	m.running = true
	m.output = ""
	m.showHint = false
	return tea.Batch(m.runCurrent(), m.spinner.Tick)
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("rustlings watch"))
	b.WriteString("\n\n")

	if msg := m.state.WelcomeMessage(); msg != "" && m.state.NumDone() == 0 && !m.finished {
		b.WriteString(MutedStyle.Render(strings.TrimRight(msg, "\n")))
		b.WriteString("\n\n")
	}

	if m.finished {
		b.WriteString(SuccessStyle.Render("You have completed all the exercises!"))
		b.WriteString("\n\n")
		if msg := m.state.FinalMessage(); msg != "" {
			b.WriteString(msg)
			b.WriteString("\n\n")
		}
		b.WriteString(m.progressView())
		b.WriteString("\n")
		b.WriteString(m.help.View(WatchKeyMap))
		return b.String()
	}

	ex := m.state.CurrentExercise()
	b.WriteString(fmt.Sprintf("Current exercise: %s  %s\n\n",
		TitleStyle.Render(ex.Name), MutedStyle.Render(ex.Path())))

	switch {
	case m.running:
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), PendingStyle.Render("Running...")))
	case ex.Done:
		b.WriteString(SuccessStyle.Render("✓ Exercise passed!"))
		b.WriteString("\n")
	default:
		b.WriteString(FailStyle.Render("✗ Not yet"))
		b.WriteString(MutedStyle.Render("  (fix the exercise and remove the \"I AM NOT DONE\" comment)"))
		b.WriteString("\n")
	}

	if output := strings.TrimRight(m.output, "\n"); output != "" && !m.running {
		b.WriteString("\n")
		b.WriteString(OutputStyle.Render(output))
		b.WriteString("\n")
	}

	if m.showHint {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render("Hint: " + strings.TrimRight(ex.Hint, "\n")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(FailStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.progressView())
	b.WriteString("\n")
	b.WriteString(m.help.View(WatchKeyMap))
	return b.String()
}

func (m *Model) progressView() string {
	total := len(m.state.Exercises())
	frac := 0.0
	if total > 0 {
		frac = float64(m.state.NumDone()) / float64(total)
	}
	return fmt.Sprintf("%s %d/%d", m.progressBar.ViewAs(frac), m.state.NumDone(), total)
}
