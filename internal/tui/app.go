// Package tui implements the terminal dashboard: the day's tasks, totals,
// goal progress and the live timer, refreshed once a minute.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase"
)

// tickInterval is how often the running timer is credited.
const tickInterval = time.Minute

// Model is the main bubbletea model for the dashboard.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// State
	summary *usecase.ShowSummaryOutput
	timer   *usecase.TimerStatusOutput
	date    time.Time
	notice  string

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Numeric state (smaller types last)
	tickEvery time.Duration
	cursor    int
	width     int
	height    int
}

// New creates a new dashboard Model showing today.
func New(c *app.Container) *Model {
	return &Model{
		container: c,
		date:      domain.Day(c.Clock.Now()),
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		tickEvery: tickInterval,
	}
}

// Run starts the dashboard in the alternate screen and blocks until it exits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSummary(),
		m.loadTimer(),
		m.scheduleTick(),
	)
}

// loadSummary returns a command that loads the summary of the shown day.
func (m *Model) loadSummary() tea.Cmd {
	date := m.date
	return func() tea.Msg {
		out, err := m.container.ShowSummaryUseCase().Execute(context.Background(), usecase.ShowSummaryInput{Date: date})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgSummaryLoaded{Out: out}
	}
}

// loadTimer returns a command that loads the timer state.
func (m *Model) loadTimer() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.TimerStatusUseCase().Execute(context.Background(), usecase.TimerStatusInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTimerLoaded{Status: out}
	}
}

// scheduleTick returns a command that fires MsgTick after the tick interval.
func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg {
		return MsgTick{Time: t}
	})
}

// tickTimer returns a command that credits the running timer.
func (m *Model) tickTimer() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.TickTimerUseCase().Execute(context.Background(), usecase.TickTimerInput{})
		if err != nil {
			return MsgError{Err: fmt.Errorf("timer tick: %w", err)}
		}
		credited := out.Flush != nil && out.Flush.Minutes > 0
		return MsgTimerChanged{Reload: credited}
	}
}

// startTimer returns a command that starts the timer on a task.
func (m *Model) startTimer(taskID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.StartTimerUseCase().Execute(context.Background(), usecase.StartTimerInput{TaskID: taskID})
		if err != nil {
			return MsgError{Err: err}
		}
		if out.Already {
			return MsgTimerChanged{Notice: fmt.Sprintf("Timer already running on %s", out.Task.Title)}
		}
		return MsgTimerChanged{
			Notice: fmt.Sprintf("Started timer on %s", out.Task.Title),
			Reload: out.Previous != nil && out.Previous.Minutes > 0,
		}
	}
}

// stopTimer returns a command that stops the timer.
func (m *Model) stopTimer() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.StopTimerUseCase().Execute(context.Background(), usecase.StopTimerInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		if out.Flush == nil {
			return MsgTimerChanged{Notice: "Stopped timer"}
		}
		return MsgTimerChanged{
			Notice: fmt.Sprintf("Stopped timer (+%d min)", out.Flush.Minutes),
			Reload: out.Flush.Minutes > 0,
		}
	}
}

// tasks returns the tasks of the loaded day.
func (m *Model) tasks() []*domain.Task {
	if m.summary == nil {
		return nil
	}
	return m.summary.Tasks
}

// SelectedTask returns the task under the cursor, or nil.
func (m *Model) SelectedTask() *domain.Task {
	tasks := m.tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return tasks[m.cursor]
}

// Update handles messages and returns the updated model and command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgSummaryLoaded:
		// A load started before a day change answers for a day no longer shown.
		if msg.Out == nil || !msg.Out.Date.Equal(m.date) {
			return m, nil
		}
		m.summary = msg.Out
		m.err = nil
		if n := len(m.tasks()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case MsgTimerLoaded:
		m.timer = msg.Status
		return m, nil

	case MsgTick:
		return m, tea.Batch(m.tickTimer(), m.scheduleTick())

	case MsgTimerChanged:
		if msg.Notice != "" {
			m.notice = msg.Notice
		}
		m.err = nil
		cmds := []tea.Cmd{m.loadTimer()}
		if msg.Reload {
			cmds = append(cmds, m.loadSummary())
		}
		return m, tea.Batch(cmds...)

	case MsgError:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.showDay(m.date.AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		return m, m.showDay(m.date.AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.Today):
		return m, m.showDay(domain.Day(m.container.Clock.Now()))

	case key.Matches(msg, m.keys.Start):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.startTimer(task.ID)

	case key.Matches(msg, m.keys.Stop):
		if m.timer == nil || m.timer.Session == nil {
			m.notice = "No timer running"
			return m, nil
		}
		return m, m.stopTimer()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.loadSummary(), m.loadTimer())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *Model) showDay(date time.Time) tea.Cmd {
	m.date = date
	m.cursor = 0
	m.summary = nil
	m.notice = ""
	return m.loadSummary()
}
