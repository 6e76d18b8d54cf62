package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskspace/taskspace/internal/events"
)

// StatsMsg carries a point-in-time allocator snapshot into the TUI. The
// demo's main loop polls Scheduler.AllocatedTaskCount et al. on a ticker and
// sends one of these; the pane itself never touches the scheduler.
type StatsMsg struct {
	Capacity       int
	Allocated      int
	AllocatedMax   int
	AllocatedAccum int
}

// StatsPaneModel renders the allocator snapshot and a running tally of
// lifecycle events: ready/started/completed/failed/respawned.
type StatsPaneModel struct {
	ready     int
	started   int
	completed int
	failed    int
	respawned int

	snapshot StatsMsg

	width   int
	height  int
	focused bool
}

// NewStatsPaneModel creates an empty stats pane.
func NewStatsPaneModel() StatsPaneModel {
	return StatsPaneModel{}
}

// Update handles messages for the stats pane.
func (m StatsPaneModel) Update(msg tea.Msg) (StatsPaneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StatsMsg:
		m.snapshot = msg

	case events.ReadyEvent:
		m.ready++
	case events.StartedEvent:
		m.started++
	case events.CompletedEvent:
		m.completed++
		if msg.Failed {
			m.failed++
		}
	case events.RespawnedEvent:
		m.respawned++
	}

	return m, nil
}

// View renders the stats pane.
func (m StatsPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := StyleTitle.Render("Queue")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Ready:     %d\n", m.ready))
	b.WriteString(fmt.Sprintf("Started:   %s\n", StyleStatusRunning.Render(fmt.Sprintf("%d", m.started))))
	b.WriteString(fmt.Sprintf("Completed: %s\n", StyleStatusComplete.Render(fmt.Sprintf("%d", m.completed))))
	b.WriteString(fmt.Sprintf("Failed:    %s\n", StyleStatusFailed.Render(fmt.Sprintf("%d", m.failed))))
	b.WriteString(fmt.Sprintf("Respawned: %d\n", m.respawned))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Allocated: %d (max %d, lifetime %d)\n",
		m.snapshot.Allocated, m.snapshot.AllocatedMax, m.snapshot.AllocatedAccum))

	if m.snapshot.Capacity > 0 {
		barWidth := min(m.width-4, 40)
		used := (m.snapshot.Allocated * barWidth) / m.snapshot.Capacity
		bar := StyleBarFilled.Render(strings.Repeat("#", max(0, used)))
		bar += StyleBarEmpty.Render(strings.Repeat(".", max(0, barWidth-used)))
		b.WriteString(fmt.Sprintf("[%s]\n", bar))
	}

	content := b.String()

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(content)
}

// SetSize updates the pane dimensions.
func (m *StatsPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused updates the focus state.
func (m *StatsPaneModel) SetFocused(focused bool) {
	m.focused = focused
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
