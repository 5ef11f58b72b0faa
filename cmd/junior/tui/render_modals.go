package tui

import (
	"fmt"
	"strings"
)

func (m model) renderSubmitView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Submit a task"))
	b.WriteString("\x1b[K\n\x1b[K\n")

	b.WriteString(statusStyle.Render("Task description (enter to submit, shift+enter for newline):"))
	b.WriteString("\x1b[K\n")
	text := m.submitText
	if text == "" {
		text = statusStyle.Render("e.g. add a README with installation instructions")
	} else {
		text = sanitizeForDisplay(text)
	}
	for _, line := range strings.Split(text+"█", "\n") {
		b.WriteString("  " + line)
		b.WriteString("\x1b[K\n")
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(statusStyle.Render("Repository (tab to change):"))
	b.WriteString("\x1b[K\n")
	repos := m.session.Repos()
	switch {
	case m.session.User() == nil && m.session.Err() != "":
		b.WriteString(errorStyle.Render("  " + m.session.Err()))
		b.WriteString("\x1b[K\n")
	case len(repos) == 0:
		b.WriteString(statusStyle.Render("  no repositories (sign in with junior login)"))
		b.WriteString("\x1b[K\n")
	default:
		start, end := scrollWindow(len(repos), m.submitRepoIdx, 5)
		for i := start; i < end; i++ {
			line := repos[i].FullName
			if repos[i].Private {
				line += " (private)"
			}
			if i == m.submitRepoIdx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\x1b[K\n")
		}
	}
	b.WriteString("\x1b[K\n")

	if m.submitPending {
		b.WriteString(statusStyle.Render("Submitting..."))
	} else if m.submitErr != "" {
		b.WriteString(errorStyle.Render(m.submitErr))
	} else if flash := m.activeFlash(viewSubmit); flash != "" {
		b.WriteString(completedStyle.Render(flash))
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(renderHelpTable([][]helpItem{{
		{"↵", "submit"}, {"tab", "repository"}, {"esc", "cancel"},
	}}))
	return b.String()
}

func (m model) renderConfirmDeleteView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Delete task"))
	b.WriteString("\x1b[K\n\x1b[K\n")

	b.WriteString(fmt.Sprintf("Delete task %s? This removes its workspace and cannot be undone.", shortID(m.deleteTaskID)))
	b.WriteString("\x1b[K\n\x1b[K\n")

	switch {
	case m.deletePending:
		b.WriteString(statusStyle.Render("Deleting..."))
	case m.deleteErr != "":
		b.WriteString(errorStyle.Render("Delete failed: " + m.deleteErr))
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(renderHelpTable([][]helpItem{{
		{"y", "delete"}, {"n", "cancel"},
	}}))
	return b.String()
}

func (m model) renderPRView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Create pull request from task %s", shortID(m.current.ID))))
	b.WriteString("\x1b[K\n\x1b[K\n")

	renderField := func(label, value string, focused bool) {
		cursor := ""
		if focused {
			cursor = "█"
		}
		b.WriteString(statusStyle.Render(label + ":"))
		b.WriteString("\x1b[K\n")
		for _, line := range strings.Split(sanitizeForDisplay(value)+cursor, "\n") {
			b.WriteString("  " + line)
			b.WriteString("\x1b[K\n")
		}
		b.WriteString("\x1b[K\n")
	}
	renderField("Title", m.prTitle, m.prField == 0)
	renderField("Body", m.prBody, m.prField == 1)

	switch {
	case m.prPending:
		b.WriteString(statusStyle.Render("Creating pull request..."))
	case m.prErr != "":
		b.WriteString(errorStyle.Render("Create PR failed: " + m.prErr))
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(renderHelpTable([][]helpItem{{
		{"↵", "create"}, {"tab", "switch field"}, {"esc", "cancel"},
	}}))
	return b.String()
}

func (m model) renderFeedbackView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Send feedback to task %s", shortID(m.current.ID))))
	b.WriteString("\x1b[K\n")
	b.WriteString(statusStyle.Render("The agent resumes its session and applies your instruction."))
	b.WriteString("\x1b[K\n\x1b[K\n")

	text := m.feedbackText
	if text == "" {
		text = statusStyle.Render("e.g. also add a license file")
	} else {
		text = sanitizeForDisplay(text)
	}
	for _, line := range strings.Split(text+"█", "\n") {
		b.WriteString("  " + line)
		b.WriteString("\x1b[K\n")
	}
	b.WriteString("\x1b[K\n")

	switch {
	case m.feedbackPending:
		b.WriteString(statusStyle.Render("Sending..."))
	case m.feedbackErr != "":
		b.WriteString(errorStyle.Render("Feedback failed: " + m.feedbackErr))
	}
	b.WriteString("\x1b[K\n")

	b.WriteString(renderHelpTable([][]helpItem{{
		{"↵", "send"}, {"shift+enter", "newline"}, {"esc", "cancel"},
	}}))
	return b.String()
}

func (m model) renderHelpView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("junior dashboard help"))
	b.WriteString("\x1b[K\n\x1b[K\n")

	sections := []struct {
		name string
		rows [][]helpItem
	}{
		{"Task list", [][]helpItem{
			{{"↑/↓ j/k", "navigate"}, {"↵", "open details"}, {"g/G", "first/last"}},
			{{"s", "submit a task"}, {"f", "cycle filter (all, running, completed)"}},
			{{"d", "delete task"}, {"r", "refresh"}, {"q", "quit"}},
		}},
		{"Task details", [][]helpItem{
			{{"↑/↓ j/k", "scroll"}, {"pgup/pgdn", "page"}},
			{{"p", "create pull request"}, {"f", "send feedback"}},
			{{"d", "delete task"}, {"y", "copy diff or output"}, {"esc", "back"}},
		}},
	}
	for _, s := range sections {
		b.WriteString(titleStyle.Render(s.name))
		b.WriteString("\x1b[K\n")
		b.WriteString(renderHelpTable(s.rows))
		b.WriteString("\x1b[K\n\x1b[K\n")
	}

	b.WriteString(statusStyle.Render("The list refreshes every few seconds; an open task polls every second while running."))
	b.WriteString("\x1b[K\n\x1b[K\n")
	b.WriteString(renderHelpTable([][]helpItem{{{"esc", "back"}}}))
	return b.String()
}
