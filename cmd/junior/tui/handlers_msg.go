package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinayakankugoyal/junior/internal/api"
)

const flashDuration = 3 * time.Second

func (m *model) setFlash(message string, view viewKind) {
	m.flashMessage = message
	m.flashExpiresAt = time.Now().Add(flashDuration)
	m.flashView = view
}

// activeFlash returns the flash message if it is still fresh and was
// raised in the given view.
func (m model) activeFlash(view viewKind) string {
	if m.flashMessage == "" || m.flashView != view || time.Now().After(m.flashExpiresAt) {
		return ""
	}
	return m.flashMessage
}

func (m model) handleTickMsg(tickMsg) (tea.Model, tea.Cmd) {
	return m, tea.Batch(m.tick(), m.fetchTasks())
}

// handleDetailTickMsg polls the task in the detail panel while it is
// running. The poll is silent: errors and unchanged snapshots leave the
// panel untouched.
func (m model) handleDetailTickMsg(msg detailTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detailSeq {
		return m, nil // tick from a chain the panel has since abandoned
	}
	if m.current == nil || m.current.Status != api.StatusRunning {
		return m, nil
	}
	return m, tea.Batch(m.detailTick(), m.fetchTask(m.current.ID, true))
}

func (m model) handleTasksMsg(msg tasksMsg) (tea.Model, tea.Cmd) {
	if msg.seq < m.fetchSeq {
		return m, nil // stale response from before a filter change
	}

	m.tasks = msg.tasks
	m.loadingTasks = false
	m.tasksFetchedOnce = true
	m.err = nil

	// Keep the selection on the same task across refreshes.
	if m.selectedID != "" {
		for i, t := range m.tasks {
			if t.ID == m.selectedID {
				m.selectedIdx = i
				return m, nil
			}
		}
	}
	if m.selectedIdx >= len(m.tasks) {
		m.selectedIdx = max(0, len(m.tasks)-1)
	}
	if m.selectedIdx < len(m.tasks) {
		m.selectedID = m.tasks[m.selectedIdx].ID
	} else {
		m.selectedID = ""
	}
	return m, nil
}

func (m model) handleTasksErrMsg(msg tasksErrMsg) (tea.Model, tea.Cmd) {
	if msg.seq < m.fetchSeq {
		return m, nil
	}
	m.loadingTasks = false
	m.err = msg.err
	return m, nil
}

func (m model) handleTaskMsg(msg taskMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.silent {
			return m, nil // transient poll failure, keep the panel as-is
		}
		if m.current != nil && m.current.ID == msg.taskID {
			m.detailErr = msg.err
		} else {
			m.err = msg.err
		}
		return m, nil
	}

	// Ignore snapshots for a task that is no longer displayed.
	if m.current == nil || m.current.ID != msg.taskID {
		return m, nil
	}
	m.detailErr = nil

	// Unchanged snapshot: keep the displayed reference so the panel
	// doesn't churn.
	if !m.current.Changed(*msg.task) {
		return m, nil
	}

	wasRunning := m.current.Status == api.StatusRunning
	m.current = msg.task
	m.updateTaskInList(*msg.task)

	// Fetch the result content exactly once, when the task first
	// reaches a terminal status.
	if wasRunning && msg.task.Status.Terminal() {
		m.contentLoading = true
		m.contentErr = nil
		m.content = nil
		return m, m.fetchContent(msg.task.ID)
	}
	return m, nil
}

// updateTaskInList syncs a fresh task snapshot into the list.
func (m *model) updateTaskInList(task api.Task) {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = task
			return
		}
	}
}

func (m model) handleContentMsg(msg contentMsg) (tea.Model, tea.Cmd) {
	// Drop content for a task that is no longer open.
	if m.current == nil || m.current.ID != msg.taskID {
		return m, nil
	}
	m.contentLoading = false
	if msg.err != nil {
		m.contentErr = msg.err
		return m, nil
	}
	m.content = msg.content
	m.contentErr = nil
	return m, nil
}

func (m model) handleSessionMsg(msg sessionMsg) (tea.Model, tea.Cmd) {
	// Session state (user, repos, error) lives on m.session; the
	// message only triggers a re-render.
	return m, nil
}

func (m model) handleSubmitResultMsg(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitPending = false
	if msg.err != nil {
		m.submitErr = msg.err.Error()
		return m, nil
	}
	m.submitText = ""
	m.submitErr = ""
	m.setFlash(fmt.Sprintf("Task %s started", shortID(msg.taskID)), viewSubmit)
	return m, m.fetchTasks()
}

func (m model) handleDeleteResultMsg(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	m.deletePending = false
	if msg.err != nil {
		m.deleteErr = msg.err.Error()
		return m, nil // stay in the confirm modal so the error is visible
	}

	// Close the detail panel if the deleted task was open.
	if m.current != nil && m.current.ID == msg.taskID {
		m.current = nil
		m.content = nil
		m.detailErr = nil
		m.detailSeq++
	}
	m.currentView = viewList
	m.deleteTaskID = ""
	m.setFlash("Task deleted", viewList)
	return m, m.fetchTasks()
}

func (m model) handlePRResultMsg(msg prResultMsg) (tea.Model, tea.Cmd) {
	m.prPending = false
	if msg.err != nil {
		m.prErr = msg.err.Error()
		return m, nil
	}
	if !msg.pr.Success {
		reason := msg.pr.Error
		if reason == "" {
			reason = msg.pr.Message
		}
		m.prErr = reason
		return m, nil
	}

	m.currentView = viewDetail
	m.prErr = ""
	m.setFlash(fmt.Sprintf("Created PR #%d: %s (copied)", msg.pr.PRNumber, msg.pr.PRURL), viewDetail)
	return m, m.copyToClipboard(msg.pr.PRURL, viewDetail)
}

// handleFeedbackResultMsg resumes the task locally: the server reuses
// the task's ID, so the panel swaps in a synthesized running snapshot
// and the detail poll picks up real state from there.
func (m model) handleFeedbackResultMsg(msg feedbackResultMsg) (tea.Model, tea.Cmd) {
	m.feedbackPending = false
	if msg.err != nil {
		m.feedbackErr = msg.err.Error()
		return m, nil
	}

	resumed := api.Task{
		ID:        msg.resp.TaskID,
		Task:      msg.feedback,
		Status:    api.StatusRunning,
		StartTime: api.Timestamp{Time: time.Now()},
	}
	if m.current != nil && m.current.ID == msg.resp.TaskID {
		resumed.SessionID = m.current.SessionID
		resumed.OriginalTask = m.current.OriginalTask
		if resumed.OriginalTask == "" {
			resumed.OriginalTask = m.current.Task
		}
		resumed.FeedbackHistory = m.current.FeedbackHistory
	}

	m.current = &resumed
	m.updateTaskInList(resumed)
	m.content = nil
	m.contentErr = nil
	m.contentLoading = false
	m.detailErr = nil
	m.detailSeq++ // the resumed task gets a fresh tick chain
	m.currentView = viewDetail
	m.feedbackText = ""
	m.feedbackErr = ""
	m.detailScroll = 0
	m.setFlash(fmt.Sprintf("Feedback sent to task %s", shortID(msg.resp.TaskID)), viewDetail)
	return m, tea.Batch(m.detailTick(), m.fetchTasks())
}

func (m model) handleClipboardResultMsg(msg clipboardResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setFlash(fmt.Sprintf("Copy failed: %v", msg.err), msg.view)
	}
	return m, nil
}
