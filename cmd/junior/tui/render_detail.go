package tui

import (
	"fmt"
	"strings"

	"github.com/vinayakankugoyal/junior/internal/api"
	"github.com/vinayakankugoyal/junior/internal/diffview"
	"github.com/vinayakankugoyal/junior/internal/outputfmt"
)

func (m model) detailHelpRows() [][]helpItem {
	row := []helpItem{
		{"↑/↓", "scroll"}, {"d", "delete"},
	}
	if m.canCreatePR() {
		row = append(row, helpItem{"p", "pull request"})
	}
	if m.canSendFeedback() {
		row = append(row, helpItem{"f", "feedback"})
	}
	row = append(row, helpItem{"y", "copy"}, helpItem{"esc", "back"})
	return [][]helpItem{row}
}

// detailBodyRows is the number of content lines visible in the panel.
func (m model) detailBodyRows() int {
	// header(3) + flash(1) + help(1)
	return max(m.height-5, 3)
}

func (m model) detailPageSize() int {
	return max(m.detailBodyRows()-1, 1)
}

func (m model) detailMaxScroll() int {
	return max(len(m.detailBodyLines())-m.detailBodyRows(), 0)
}

func (m model) renderDetailView() string {
	t := m.current
	var b strings.Builder

	title := fmt.Sprintf("task %s", shortID(t.ID))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(statusStyleFor(t.Status).Render(string(t.Status)))
	if elapsed := taskElapsed(*t); elapsed != "" {
		b.WriteString(statusStyle.Render("  " + elapsed))
	}
	b.WriteString("\x1b[K\n")

	meta := truncate(sanitizeForDisplay(t.Task), max(m.width-2, 20))
	if len(t.FeedbackHistory) > 0 {
		meta += fmt.Sprintf("  (%d feedback rounds)", len(t.FeedbackHistory))
	}
	b.WriteString(statusStyle.Render(meta))
	b.WriteString("\x1b[K\n")
	b.WriteString("\x1b[K\n")

	lines := m.detailBodyLines()
	rows := m.detailBodyRows()
	start := min(m.detailScroll, max(len(lines)-1, 0))
	end := min(start+rows, len(lines))
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteString("\x1b[K\n")
	}
	for i := end - start; i < rows; i++ {
		b.WriteString("\x1b[K\n")
	}

	if flash := m.activeFlash(viewDetail); flash != "" {
		b.WriteString(completedStyle.Render(flash))
	} else if len(lines) > rows {
		b.WriteString(statusStyle.Render(fmt.Sprintf("[%d-%d/%d]", start+1, end, len(lines))))
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(renderHelpTable(m.detailHelpRows()))
	return b.String()
}

// detailBodyLines composes the scrollable panel body: task error,
// rendered agent output, then the diff or file listing.
func (m model) detailBodyLines() []string {
	t := m.current
	var lines []string
	width := max(m.width-2, 20)

	if m.detailErr != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Refresh failed: %v", m.detailErr)))
		lines = append(lines, "")
	}

	if t.Error != "" {
		lines = append(lines, errorStyle.Render("Error: "+sanitizeForDisplay(t.Error)))
		lines = append(lines, "")
	}

	if t.Output != "" {
		rendered := outputfmt.RenderWithStyle(t.Output, width, m.glamourStyle)
		if rendered != "" {
			lines = append(lines, strings.Split(rendered, "\n")...)
			lines = append(lines, "")
		}
	} else if t.Status == api.StatusRunning {
		lines = append(lines, "Working...")
	}

	switch {
	case m.contentLoading:
		lines = append(lines, statusStyle.Render("Loading changes..."))
	case m.contentErr != nil:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Fetch changes: %v", m.contentErr)))
	case m.content != nil:
		lines = append(lines, m.contentLines()...)
	}
	return lines
}

func (m model) contentLines() []string {
	c := m.content
	if c.Empty() {
		return []string{statusStyle.Render("No changes.")}
	}

	if c.ContentType == api.ContentFiles {
		lines := []string{titleStyle.Render(fmt.Sprintf("Files (%d)", len(c.Files)))}
		for _, f := range c.Files {
			lines = append(lines, "", statusStyle.Render(fmt.Sprintf("%s (%d bytes)", sanitizeForDisplay(f.Path), f.Size)))
			if f.Type == "binary" {
				lines = append(lines, "  [binary file]")
				continue
			}
			for _, l := range strings.Split(sanitizeForDisplay(f.Content), "\n") {
				lines = append(lines, "  "+l)
			}
		}
		return lines
	}

	files, err := diffview.Parse(c.Diff)
	if err != nil {
		// Unparseable diffs still get shown raw
		lines := []string{titleStyle.Render("Changes")}
		return append(lines, strings.Split(sanitizeForDisplay(c.Diff), "\n")...)
	}

	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("Changes (%d files)", len(files))))
	for _, f := range files {
		lines = append(lines, m.fileDiffLines(f)...)
	}
	return lines
}

func (m model) fileDiffLines(f diffview.FileDiff) []string {
	var style = statusStyle
	switch f.Kind {
	case diffview.Added:
		style = addedStyle
	case diffview.Deleted:
		style = removedStyle
	case diffview.Renamed:
		style = renamedStyle
	}

	header := fmt.Sprintf("%s %s  +%d -%d", f.Kind, f.Path(), f.Additions, f.Deletions)
	if f.Kind == diffview.Renamed {
		header += fmt.Sprintf("  (from %s)", f.OldPath)
	}
	lines := []string{"", style.Render(header)}

	width := max(m.width-4, 20)
	for _, h := range f.Hunks {
		lines = append(lines, statusStyle.Render(h.Header))
		for _, l := range h.Lines {
			text := truncate(sanitizeForDisplay(l.Text), width)
			switch l.Kind {
			case diffview.LineAdded:
				lines = append(lines, addedStyle.Render("+"+text))
			case diffview.LineRemoved:
				lines = append(lines, removedStyle.Render("-"+text))
			default:
				lines = append(lines, " "+text)
			}
		}
	}
	return lines
}
