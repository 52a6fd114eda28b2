package cli

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/thenoetrevino/kanban/internal/cli/styles"
	"github.com/thenoetrevino/kanban/internal/models"
)

const timeLayout = "Jan 2, 2006 3:04 PM"

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a task description as terminal markdown, falling
// back to the raw text when rendering fails
func RenderMarkdown(text string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// RenderTask renders the detail card of one task
func RenderTask(task *models.Task) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d: %s", task.ID, task.Title)))
	if badge := styles.RenderPriority(task.Priority); badge != "" {
		content.WriteString(" " + badge)
	}
	content.WriteString("\n\n")

	fmt.Fprintf(&content, "%s %s  %s %s\n",
		styles.LabelStyle.Render("Status:"),
		styles.RenderStatus(task.Status),
		styles.LabelStyle.Render("Position:"),
		styles.ValueStyle.Render(fmt.Sprintf("%d", task.Position)),
	)
	if task.Assignee != "" {
		fmt.Fprintf(&content, "%s %s\n",
			styles.LabelStyle.Render("Assignee:"),
			styles.ValueStyle.Render(task.Assignee))
	}
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(&content, "%s %s\n",
			styles.LabelStyle.Render("Created:"),
			styles.SubtitleStyle.Render(task.CreatedAt.Local().Format(timeLayout)))
	}
	if !task.UpdatedAt.IsZero() {
		fmt.Fprintf(&content, "%s %s\n",
			styles.LabelStyle.Render("Updated:"),
			styles.SubtitleStyle.Render(task.UpdatedAt.Local().Format(timeLayout)))
	}

	if task.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		content.WriteString(RenderMarkdown(task.Description, styles.CardWidth-6))
		content.WriteString("\n")
	}

	return styles.RenderCard(content.String())
}

// RenderBoard lays the columns out side by side, each listing its tasks
// in position order. tasks must already be sorted by status and position.
func RenderBoard(tasks []*models.Task) string {
	byStatus := make(map[models.Status][]*models.Task, len(models.Statuses))
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	columns := make([]string, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		columns = append(columns, RenderColumn(status, byStatus[status]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// RenderColumn renders one status column
func RenderColumn(status models.Status, tasks []*models.Task) string {
	lines := []string{
		styles.RenderStatus(status) + styles.SubtitleStyle.Render(fmt.Sprintf(" (%d)", len(tasks))),
		"",
	}
	if len(tasks) == 0 {
		lines = append(lines, styles.SubtitleStyle.Render("no tasks"))
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%d. #%d %s", t.Position, t.ID, t.Title)
		if badge := styles.RenderPriority(t.Priority); badge != "" {
			line += " " + badge
		}
		lines = append(lines, styles.ValueStyle.Render(line))
	}
	return styles.ColumnStyle.Render(strings.Join(lines, "\n"))
}
