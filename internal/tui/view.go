package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/kanban/internal/cli/styles"
	"github.com/thenoetrevino/kanban/internal/models"
)

var selectedCardStyle = lipgloss.NewStyle().Reverse(true)

// View implements tea.Model
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if !m.loaded {
		view.Content = "Loading..."
		if m.err != nil {
			view.Content = styles.ErrorStyle.Render(m.err.Error())
		}
		return view
	}

	view.Content = lipgloss.JoinVertical(lipgloss.Left, m.viewBoard(), m.viewFooter())
	return view
}

func (m Model) viewBoard() string {
	width := styles.ColumnWidth
	if m.width > 0 {
		width = max(m.width/len(models.Statuses)-2, 12)
	}

	rendered := make([]string, 0, len(models.Statuses))
	for c, status := range models.Statuses {
		column := m.columns[c]

		var b strings.Builder
		header := styles.RenderStatus(status) + styles.SubtitleStyle.Render(fmt.Sprintf(" (%d)", len(column)))
		b.WriteString(header)
		b.WriteString("\n")
		if len(column) == 0 {
			b.WriteString(styles.SubtitleStyle.Render("no tasks"))
		}
		for r, t := range column {
			line := fmt.Sprintf("#%d %s", t.ID, t.Title)
			if badge := styles.RenderPriority(t.Priority); badge != "" {
				line += " " + badge
			}
			if c == m.selectedColumn && r == m.selectedTask {
				line = selectedCardStyle.Render(line)
			}
			b.WriteString("\n" + line)
		}

		style := styles.ColumnStyle.Width(width)
		if c == m.selectedColumn {
			style = style.BorderForeground(styles.LabelStyle.GetForeground())
		}
		rendered = append(rendered, style.Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewFooter() string {
	var lines []string
	switch {
	case m.confirmDelete:
		if t := m.SelectedTask(); t != nil {
			lines = append(lines, styles.WarningStyle.Render(fmt.Sprintf("Delete #%d %q? (y/N)", t.ID, t.Title)))
		}
	case m.err != nil:
		lines = append(lines, styles.ErrorStyle.Render(m.notice))
	case m.notice != "":
		lines = append(lines, styles.SuccessStyle.Render(m.notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
