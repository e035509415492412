package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goalgrid/goalgrid/internal/cli/formatter"
	"github.com/goalgrid/goalgrid/internal/domain"
)

// taskCompletedMsg signals that a task completion round-trip finished.
type taskCompletedMsg struct {
	lesson *domain.Lesson
	err    error
}

type taskListKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var defaultTaskListKeys = taskListKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "complete")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// taskListModel is a minimal interactive view over one lesson's task list.
type taskListModel struct {
	app    *App
	userID string
	date   string
	tasks  []domain.Task
	cursor int
	keys   taskListKeys
	err    error
}

func newTaskListModel(app *App, userID, date string, tasks []domain.Task) *taskListModel {
	return &taskListModel{
		app:    app,
		userID: userID,
		date:   date,
		tasks:  tasks,
		keys:   defaultTaskListKeys,
	}
}

func (m *taskListModel) Init() tea.Cmd { return nil }

func (m *taskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskCompletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tasks = msg.lesson.Tasks
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(m.tasks) && !m.tasks[m.cursor].Completed {
				return m, m.completeTask(m.tasks[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func (m *taskListModel) completeTask(taskID string) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.app.Service.CompleteTask(context.Background(), m.userID, m.date, taskID)
		return taskCompletedMsg{lesson: updated, err: err}
	}
}

func (m *taskListModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(fmt.Sprintf("Tasks for %s", m.date)))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(formatter.StyleDim.Render("No tasks yet."))
		b.WriteString("\n")
	}
	for i, t := range m.tasks {
		b.WriteString(formatter.TaskLine(t, i == m.cursor))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleYellow.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.StyleDim.Render("↑/↓ move · space complete · q quit"))
	b.WriteString("\n")
	return b.String()
}
