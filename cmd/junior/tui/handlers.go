package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func (m model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case viewSubmit:
		return m.handleSubmitKey(msg)
	case viewConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case viewPR:
		return m.handlePRKey(msg)
	case viewFeedback:
		return m.handleFeedbackKey(msg)
	case viewHelp:
		return m.handleHelpViewKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.selectedID = m.tasks[m.selectedIdx].ID
		}
		return m, nil
	case "down", "j":
		if m.selectedIdx < len(m.tasks)-1 {
			m.selectedIdx++
			m.selectedID = m.tasks[m.selectedIdx].ID
		}
		return m, nil
	case "g", "home":
		if len(m.tasks) > 0 {
			m.selectedIdx = 0
			m.selectedID = m.tasks[0].ID
		}
		return m, nil
	case "G", "end":
		if len(m.tasks) > 0 {
			m.selectedIdx = len(m.tasks) - 1
			m.selectedID = m.tasks[m.selectedIdx].ID
		}
		return m, nil
	case "enter":
		return m.openDetail()
	case "s":
		m.currentView = viewSubmit
		m.submitErr = ""
		return m, nil
	case "f":
		return m.cycleFilter()
	case "r":
		m.loadingTasks = true
		return m, m.fetchTasks()
	case "d":
		if m.selectedIdx < len(m.tasks) {
			m.deleteTaskID = m.tasks[m.selectedIdx].ID
			m.deleteErr = ""
			m.currentView = viewConfirmDelete
		}
		return m, nil
	case "?":
		m.helpFromView = viewList
		m.currentView = viewHelp
		return m, nil
	}
	return m, nil
}

// openDetail opens the detail panel for the selected task. Terminal
// tasks get their content fetched immediately; running tasks start the
// 1s silent poll instead, and content arrives when they finish.
func (m model) openDetail() (tea.Model, tea.Cmd) {
	if m.selectedIdx >= len(m.tasks) {
		return m, nil
	}
	task := m.tasks[m.selectedIdx]
	m.current = &task
	m.content = nil
	m.contentErr = nil
	m.detailErr = nil
	m.detailScroll = 0
	m.detailSeq++ // orphan any tick chain from a previously open panel
	m.currentView = viewDetail

	if task.Status.Terminal() {
		m.contentLoading = true
		return m, tea.Batch(m.fetchContent(task.ID), m.fetchTask(task.ID, false))
	}
	return m, tea.Batch(m.detailTick(), m.fetchTask(task.ID, true))
}

func (m model) cycleFilter() (tea.Model, tea.Cmd) {
	switch m.filter {
	case api.FilterAll:
		m.filter = api.FilterRunning
	case api.FilterRunning:
		m.filter = api.FilterCompleted
	default:
		m.filter = api.FilterAll
	}
	m.fetchSeq++ // discard in-flight responses for the old filter
	m.loadingTasks = true
	m.selectedIdx = 0
	m.selectedID = ""
	return m, m.fetchTasks()
}

func (m model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.currentView = viewList
		m.current = nil
		m.content = nil
		m.contentErr = nil
		m.detailErr = nil
		m.detailSeq++
		return m, nil
	case "up", "k":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
		return m, nil
	case "down", "j":
		if m.detailScroll < m.detailMaxScroll() {
			m.detailScroll++
		}
		return m, nil
	case "pgup":
		m.detailScroll = max(0, m.detailScroll-m.detailPageSize())
		return m, nil
	case "pgdown":
		m.detailScroll = min(m.detailMaxScroll(), m.detailScroll+m.detailPageSize())
		return m, nil
	case "g", "home":
		m.detailScroll = 0
		return m, nil
	case "G", "end":
		m.detailScroll = m.detailMaxScroll()
		return m, nil
	case "r":
		if m.current != nil {
			return m, m.fetchTask(m.current.ID, false)
		}
		return m, nil
	case "d":
		if m.current != nil {
			m.deleteTaskID = m.current.ID
			m.deleteErr = ""
			m.currentView = viewConfirmDelete
		}
		return m, nil
	case "p":
		return m.openPRModal()
	case "f":
		return m.openFeedbackModal()
	case "y":
		return m.copyDetail()
	case "?":
		m.helpFromView = viewDetail
		m.currentView = viewHelp
		return m, nil
	}
	return m, nil
}

// canCreatePR reports whether the PR action is available: the task is
// finished, produced a diff, and a GitHub token is configured.
func (m model) canCreatePR() bool {
	if m.current == nil || !m.current.Status.Terminal() {
		return false
	}
	if m.session.Token() == "" {
		return false
	}
	return m.content != nil && m.content.ContentType == api.ContentDiff && !m.content.Empty()
}

// canSendFeedback reports whether the feedback action is available:
// the task is finished and kept a resumable agent session.
func (m model) canSendFeedback() bool {
	return m.current != nil && m.current.Status.Terminal() && m.current.SessionID != ""
}

func (m model) openPRModal() (tea.Model, tea.Cmd) {
	if !m.canCreatePR() {
		if m.current != nil && m.session.Token() == "" {
			m.setFlash("No GitHub token configured (run junior login)", viewDetail)
		}
		return m, nil
	}
	m.prTitle = truncate(m.current.Task, 70)
	m.prBody = m.current.Task
	m.prField = 0
	m.prErr = ""
	m.currentView = viewPR
	return m, nil
}

func (m model) openFeedbackModal() (tea.Model, tea.Cmd) {
	if !m.canSendFeedback() {
		return m, nil
	}
	m.feedbackText = ""
	m.feedbackErr = ""
	m.currentView = viewFeedback
	return m, nil
}

// copyDetail copies the most useful artifact of the open task: the
// diff when one exists, the agent output otherwise.
func (m model) copyDetail() (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	text := m.current.Output
	if m.content != nil && m.content.ContentType == api.ContentDiff && m.content.Diff != "" {
		text = m.content.Diff
	}
	if text == "" {
		return m, nil
	}
	m.setFlash("Copied", viewDetail)
	return m, m.copyToClipboard(text, viewDetail)
}

func (m model) handleHelpViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.currentView = m.helpFromView
		return m, nil
	}
	return m, nil
}
