package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskspace/taskspace/internal/events"
)

// taskState is one task's lifecycle trace as seen through the event bus.
type taskState struct {
	ID     string
	Status string // "ready", "running", "completed", "failed"
	Log    []string
}

// TaskPaneModel lists every task the bus has mentioned and shows the
// selected one's event log in a scrollable viewport.
type TaskPaneModel struct {
	tasks       map[string]*taskState
	order       []string
	selectedIdx int
	viewport    viewport.Model
	width       int
	height      int
	focused     bool
}

// NewTaskPaneModel creates a new task pane model.
func NewTaskPaneModel() TaskPaneModel {
	return TaskPaneModel{
		tasks:    make(map[string]*taskState),
		viewport: viewport.New(0, 0),
	}
}

func (m *TaskPaneModel) entry(id string) *taskState {
	st, ok := m.tasks[id]
	if !ok {
		st = &taskState{ID: id, Status: "ready"}
		m.tasks[id] = st
		m.order = append(m.order, id)
		if len(m.order) == 1 {
			m.selectedIdx = 0
		}
	}
	return st
}

// Update handles messages for the task pane.
func (m TaskPaneModel) Update(msg tea.Msg) (TaskPaneModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tea.KeyMsg:
		if !m.focused {
			break
		}
		switch msg.String() {
		case KeyJ, KeyDown:
			if m.selectedIdx < len(m.order)-1 {
				m.selectedIdx++
				m.updateViewportContent()
			}
		case KeyK, KeyUp:
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.updateViewportContent()
			}
		default:
			m.viewport, cmd = m.viewport.Update(msg)
		}

	case events.ReadyEvent:
		st := m.entry(msg.TaskID().String())
		st.Status = "ready"
		st.Log = append(st.Log, fmt.Sprintf("ready (priority %d)", msg.Priority))
		m.updateSelectedIfCurrent(st.ID)

	case events.StartedEvent:
		st := m.entry(msg.TaskID().String())
		st.Status = "running"
		st.Log = append(st.Log, fmt.Sprintf("started on worker %d", msg.GroupRank))
		m.updateSelectedIfCurrent(st.ID)

	case events.CompletedEvent:
		st := m.entry(msg.TaskID().String())
		if msg.Failed {
			st.Status = "failed"
			st.Log = append(st.Log, "failed")
		} else {
			st.Status = "completed"
			st.Log = append(st.Log, "completed")
		}
		m.updateSelectedIfCurrent(st.ID)

	case events.RespawnedEvent:
		st := m.entry(msg.TaskID().String())
		st.Status = "running"
		st.Log = append(st.Log, "respawned")
		m.updateSelectedIfCurrent(st.ID)
	}

	return m, cmd
}

func (m *TaskPaneModel) updateSelectedIfCurrent(id string) {
	if m.getSelectedID() == id {
		m.updateViewportContent()
	}
}

func (m TaskPaneModel) getSelectedID() string {
	if m.selectedIdx >= 0 && m.selectedIdx < len(m.order) {
		return m.order[m.selectedIdx]
	}
	return ""
}

func (m *TaskPaneModel) updateViewportContent() {
	id := m.getSelectedID()
	st, ok := m.tasks[id]
	if !ok {
		m.viewport.SetContent("Waiting for tasks...")
		return
	}
	m.viewport.SetContent(strings.Join(st.Log, "\n"))
	m.viewport.GotoBottom()
}

// View renders the task pane.
func (m TaskPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	listWidth := 16
	viewportWidth := m.width - listWidth - 4

	listContent := m.renderTaskList(listWidth)
	viewportContent := m.viewport.View()

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listContent,
		lipgloss.NewStyle().
			Width(viewportWidth).
			Height(m.height-2).
			Render(viewportContent),
	)

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(content)
}

func (m TaskPaneModel) renderTaskList(width int) string {
	var b strings.Builder

	title := StyleTitle.Render("Tasks")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", min(width, lipgloss.Width(title))))
	b.WriteString("\n\n")

	if len(m.order) == 0 {
		b.WriteString(StyleStatusPending.Render("Waiting..."))
	} else {
		for i, id := range m.order {
			st := m.tasks[id]
			icon := statusIcon(st.Status)
			short := id
			if len(short) > 8 {
				short = short[:8]
			}
			line := fmt.Sprintf("%s %s", icon, short)
			if i == m.selectedIdx {
				line = lipgloss.NewStyle().
					Background(lipgloss.Color("62")).
					Foreground(lipgloss.Color("0")).
					Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(m.height - 2).
		Render(b.String())
}

func statusIcon(status string) string {
	switch status {
	case "ready":
		return StyleStatusReady.Render("○")
	case "running":
		return StyleStatusRunning.Render("●")
	case "completed":
		return StyleStatusComplete.Render("✓")
	case "failed":
		return StyleStatusFailed.Render("✗")
	default:
		return StyleStatusPending.Render("○")
	}
}

func (m *TaskPaneModel) resizeViewport() {
	listWidth := 16
	viewportWidth := m.width - listWidth - 4
	viewportHeight := m.height - 4

	if viewportWidth < 10 {
		viewportWidth = 10
	}
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight
}

// SetSize updates the pane dimensions.
func (m *TaskPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.resizeViewport()
}

// SetFocused updates the focus state.
func (m *TaskPaneModel) SetFocused(focused bool) {
	m.focused = focused
}
