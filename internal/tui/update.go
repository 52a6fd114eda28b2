package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kanban/internal/models"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case boardMsg:
		m.applyBoard(msg)
		return m, nil
	case tea.KeyPressMsg:
		if m.confirmDelete {
			return m.handleDeleteConfirm(msg)
		}
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload(0, "")
	case key.Matches(msg, m.keys.MoveLeft):
		return m.handleMoveTaskAcross(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m.handleMoveTaskAcross(1)
	case key.Matches(msg, m.keys.MoveUp):
		return m.handleMoveTaskWithin(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.handleMoveTaskWithin(1)
	case key.Matches(msg, m.keys.Delete):
		if m.SelectedTask() == nil {
			m.notice = "No task selected"
		} else {
			m.confirmDelete = true
		}
	case key.Matches(msg, m.keys.Left):
		m.handleNavigateColumn(-1)
	case key.Matches(msg, m.keys.Right):
		m.handleNavigateColumn(1)
	case key.Matches(msg, m.keys.Up):
		if m.selectedTask > 0 {
			m.selectedTask--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedTask < len(m.columns[m.selectedColumn])-1 {
			m.selectedTask++
		}
	}
	return m, nil
}

func (m *Model) handleNavigateColumn(delta int) {
	next := m.selectedColumn + delta
	if next < 0 || next >= len(models.Statuses) {
		return
	}
	m.selectedColumn = next
	m.selectedTask = min(m.selectedTask, max(len(m.columns[next])-1, 0))
}

// handleMoveTaskAcross moves the selected card into the neighbouring column,
// keeping its row when the target column is long enough and appending it
// otherwise
func (m Model) handleMoveTaskAcross(delta int) (tea.Model, tea.Cmd) {
	task := m.SelectedTask()
	if task == nil {
		m.notice = "No task selected"
		return m, nil
	}
	target := m.selectedColumn + delta
	if target < 0 {
		m.notice = "Already at the first column"
		return m, nil
	}
	if target >= len(models.Statuses) {
		m.notice = "Already at the last column"
		return m, nil
	}

	status := models.Statuses[target]
	position := min(m.selectedTask, len(m.columns[target]))
	return m, m.move(task, status, position)
}

// handleMoveTaskWithin swaps the selected card with its neighbour
func (m Model) handleMoveTaskWithin(delta int) (tea.Model, tea.Cmd) {
	task := m.SelectedTask()
	if task == nil {
		m.notice = "No task selected"
		return m, nil
	}
	position := m.selectedTask + delta
	if position < 0 {
		m.notice = "Already at the top"
		return m, nil
	}
	if position >= len(m.columns[m.selectedColumn]) {
		m.notice = "Already at the bottom"
		return m, nil
	}
	return m, m.move(task, task.Status, position)
}

func (m Model) move(task *models.Task, status models.Status, position int) tea.Cmd {
	id := task.ID
	notice := fmt.Sprintf("Moved #%d to %s", id, status.DisplayName())
	return m.reload(id, notice, func(ctx context.Context) error {
		return m.tasks.MoveTask(ctx, id, status, position)
	})
}

func (m Model) handleDeleteConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	task := m.SelectedTask()
	if task == nil || !key.Matches(msg, m.keys.Confirm) {
		m.notice = "Delete cancelled"
		return m, nil
	}

	id := task.ID
	return m, m.reload(0, fmt.Sprintf("Deleted #%d", id), func(ctx context.Context) error {
		return m.tasks.DeleteTask(ctx, id)
	})
}
