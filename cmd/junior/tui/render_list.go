package tui

import (
	"fmt"
	"strings"

	"github.com/vinayakankugoyal/junior/internal/api"
	"github.com/vinayakankugoyal/junior/internal/version"
)

func (m model) listHelpRows() [][]helpItem {
	return [][]helpItem{
		{
			{"↑/↓", "navigate"}, {"↵", "details"}, {"s", "submit"},
			{"f", "filter"}, {"d", "delete"},
		},
		{
			{"r", "refresh"}, {"?", "help"}, {"q", "quit"},
		},
	}
}

func (m model) listVisibleRows() int {
	// title(1) + status(1) + header(2) + flash(1) + help(2)
	reserved := 5 + len(m.listHelpRows())
	return max(m.height-reserved, 3)
}

func (m model) renderListView() string {
	var b strings.Builder

	title := fmt.Sprintf("junior tasks (%s)", version.Version)
	if m.filter != api.FilterAll {
		title += fmt.Sprintf(" [filter: %s]", m.filter)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\x1b[K\n") // Clear to end of line

	b.WriteString(statusStyle.Render(m.listStatusLine()))
	b.WriteString("\x1b[K\n")

	visibleRows := m.listVisibleRows()

	if len(m.tasks) == 0 {
		switch {
		case m.loadingTasks:
			b.WriteString("Loading...")
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		case m.filter != api.FilterAll:
			b.WriteString(fmt.Sprintf("No %s tasks", m.filter))
		default:
			b.WriteString("No tasks yet. Press s to submit one.")
		}
		b.WriteString("\x1b[K\n")
		for i := 1; i < visibleRows+2; i++ {
			b.WriteString("\x1b[K\n")
		}
	} else {
		header := fmt.Sprintf("  %-8s %-10s %-10s %s", "ID", "Status", "Elapsed", "Task")
		b.WriteString(statusStyle.Render(header))
		b.WriteString("\x1b[K\n")
		b.WriteString("  " + strings.Repeat("-", min(m.width-4, 200)))
		b.WriteString("\x1b[K\n")

		start, end := scrollWindow(len(m.tasks), m.selectedIdx, visibleRows)
		taskWidth := max(m.width-36, 20)
		for i := start; i < end; i++ {
			t := m.tasks[i]
			line := fmt.Sprintf("%-8s %-10s %-10s %s",
				shortID(t.ID), t.Status, taskElapsed(t),
				truncate(sanitizeForDisplay(t.Task), taskWidth))
			if i == m.selectedIdx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + statusStyleFor(t.Status).Render(line))
			}
			b.WriteString("\x1b[K\n")
		}
		for i := end - start; i < visibleRows; i++ {
			b.WriteString("\x1b[K\n")
		}
	}

	if flash := m.activeFlash(viewList); flash != "" {
		b.WriteString(completedStyle.Render(flash))
	} else if m.err != nil && len(m.tasks) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(renderHelpTable(m.listHelpRows()))
	return b.String()
}

// listStatusLine summarizes the session and task counts.
func (m model) listStatusLine() string {
	running, completed, failed := 0, 0, 0
	for _, t := range m.tasks {
		switch t.Status {
		case api.StatusRunning:
			running++
		case api.StatusCompleted:
			completed++
		case api.StatusFailed:
			failed++
		}
	}

	who := "not signed in"
	if u := m.session.User(); u != nil {
		who = u.Login
	} else if msg := m.session.Err(); msg != "" {
		who = "github: " + truncate(msg, 40)
	}
	return fmt.Sprintf("Server: %s | GitHub: %s | Running: %d | Completed: %d | Failed: %d",
		m.serverAddr, who, running, completed, failed)
}

// scrollWindow returns the [start, end) slice of rows to display so the
// selection stays visible.
func scrollWindow(total, selected, visible int) (int, int) {
	if total <= visible {
		return 0, total
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}
