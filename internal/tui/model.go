package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskspace/taskspace/internal/events"
)

// PaneID identifies which pane is focused.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneStats
)

// Model is the root Bubble Tea model for the queue dashboard.
type Model struct {
	taskPane  TaskPaneModel
	statsPane StatsPaneModel
	focused   PaneID
	eventSub  <-chan events.Event
	width     int
	height    int
	quitting  bool
}

// New creates a new dashboard model subscribed to every topic on bus.
func New(bus *events.Bus) Model {
	return Model{
		taskPane:  NewTaskPaneModel(),
		statsPane: NewStatsPaneModel(),
		focused:   PaneTasks,
		eventSub:  bus.SubscribeAll(256),
	}
}

// Init starts the event pump.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.eventSub)
}

func waitForEvent(sub <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil
		}
		return event
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case KeyQuit, KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.focused = (m.focused + 1) % 2
			m.updateFocusStates()
		default:
			var cmd tea.Cmd
			m.taskPane, cmd = m.taskPane.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.computeLayout()

	case StatsMsg:
		var cmd tea.Cmd
		m.statsPane, cmd = m.statsPane.Update(msg)
		cmds = append(cmds, cmd)

	case events.ReadyEvent, events.StartedEvent, events.CompletedEvent, events.RespawnedEvent:
		var cmd tea.Cmd
		m.taskPane, cmd = m.taskPane.Update(msg)
		cmds = append(cmds, cmd)
		m.statsPane, cmd = m.statsPane.Update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, waitForEvent(m.eventSub))

	case events.QuiescentEvent:
		cmds = append(cmds, waitForEvent(m.eventSub))
	}

	return m, tea.Batch(cmds...)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	left := m.taskPane.View()
	right := m.statsPane.View()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, mainContent, HelpView())
}

func (m *Model) computeLayout() {
	leftWidth := (m.width * 60) / 100
	rightWidth := m.width - leftWidth
	availableHeight := m.height - 1

	m.taskPane.SetSize(leftWidth, availableHeight)
	m.statsPane.SetSize(rightWidth, availableHeight)
	m.updateFocusStates()
}

func (m *Model) updateFocusStates() {
	m.taskPane.SetFocused(m.focused == PaneTasks)
	m.statsPane.SetFocused(m.focused == PaneStats)
}
