// Package tui implements the interactive board: columns side by side, with
// cards moved and deleted through the task service
package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kanban/internal/models"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
)

// Model is the bubbletea model of the interactive board
type Model struct {
	ctx   context.Context
	tasks taskservice.Service

	// columns is indexed like models.Statuses, each in position order
	columns [][]*models.Task

	selectedColumn int
	selectedTask   int
	confirmDelete  bool
	loaded         bool

	notice string
	err    error

	width  int
	height int

	keys keyMap
	help help.Model
}

// boardMsg carries a fresh copy of the board, optionally after a mutation.
// focus is the task the selection should follow, 0 to keep the current slot.
type boardMsg struct {
	tasks  []*models.Task
	focus  int64
	notice string
	err    error
}

// New returns a board model over svc. The board is loaded by Init.
func New(ctx context.Context, svc taskservice.Service) Model {
	return Model{
		ctx:     ctx,
		tasks:   svc,
		columns: make([][]*models.Task, len(models.Statuses)),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init loads the board
func (m Model) Init() tea.Cmd {
	return m.reload(0, "")
}

// SelectedColumn returns the status of the column under the cursor
func (m Model) SelectedColumn() models.Status {
	return models.Statuses[m.selectedColumn]
}

// SelectedTask returns the card under the cursor, or nil for an empty column
func (m Model) SelectedTask() *models.Task {
	column := m.columns[m.selectedColumn]
	if m.selectedTask < 0 || m.selectedTask >= len(column) {
		return nil
	}
	return column[m.selectedTask]
}

// Notice returns the last status line shown under the board
func (m Model) Notice() string {
	return m.notice
}

// Err returns the error of the last failed operation, if any
func (m Model) Err() error {
	return m.err
}

// reload lists the board after running op. A failing op still reloads, so
// the board never shows state the store rejected.
func (m Model) reload(focus int64, notice string, ops ...func(context.Context) error) tea.Cmd {
	ctx, svc := m.ctx, m.tasks
	return func() tea.Msg {
		var opErr error
		for _, op := range ops {
			if opErr = op(ctx); opErr != nil {
				break
			}
		}
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return boardMsg{err: fmt.Errorf("failed to load board: %w", err)}
		}
		if opErr != nil {
			return boardMsg{tasks: tasks, focus: focus, err: opErr}
		}
		return boardMsg{tasks: tasks, focus: focus, notice: notice}
	}
}

// applyBoard replaces the columns and places the cursor on focus when it is
// still on the board, otherwise clamps it to the current column
func (m *Model) applyBoard(msg boardMsg) {
	m.err = msg.err
	m.notice = msg.notice
	if msg.err != nil {
		m.notice = msg.err.Error()
	}
	if msg.tasks == nil && msg.err != nil {
		return
	}

	m.loaded = true
	columns := make([][]*models.Task, len(models.Statuses))
	for _, t := range msg.tasks {
		rank := t.Status.Rank()
		if rank < 0 {
			continue
		}
		columns[rank] = append(columns[rank], t)
	}
	m.columns = columns

	if msg.focus != 0 {
		for c, column := range columns {
			for r, t := range column {
				if t.ID == msg.focus {
					m.selectedColumn, m.selectedTask = c, r
					return
				}
			}
		}
	}
	m.selectedTask = min(m.selectedTask, max(len(columns[m.selectedColumn])-1, 0))
}
