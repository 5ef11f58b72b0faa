package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func (m model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tickInterval returns the list polling interval based on activity.
// Polls frequently while any task is running, slower when idle.
func (m model) tickInterval() time.Duration {
	// Before the first fetch, stay responsive on startup
	if !m.tasksFetchedOnce {
		return m.listInterval
	}
	for _, t := range m.tasks {
		if t.Status == api.StatusRunning {
			return m.listInterval
		}
	}
	return tickIntervalIdle
}

func (m model) detailTick() tea.Cmd {
	seq := m.detailSeq
	return tea.Tick(m.detailInterval, func(time.Time) tea.Msg {
		return detailTickMsg{seq: seq}
	})
}

func (m model) fetchTasks() tea.Cmd {
	filter := m.filter
	seq := m.fetchSeq
	client := m.client

	return func() tea.Msg {
		tasks, err := client.List(filter)
		if err != nil {
			return tasksErrMsg{err: err, seq: seq}
		}
		return tasksMsg{tasks: tasks, seq: seq}
	}
}

// fetchTask fetches a single task. silent marks background detail
// polls: their errors are dropped so a blip doesn't disturb the panel.
func (m model) fetchTask(taskID string, silent bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.Status(taskID)
		return taskMsg{task: task, taskID: taskID, silent: silent, err: err}
	}
}

func (m model) fetchContent(taskID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		content, err := client.Content(taskID)
		return contentMsg{taskID: taskID, content: content, err: err}
	}
}

func (m model) loadSession() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return sessionMsg{err: session.Load()}
	}
}

func (m model) submitTask(text, repo string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		id, err := client.Submit(text, repo)
		return submitResultMsg{taskID: id, err: err}
	}
}

func (m model) deleteTask(taskID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return deleteResultMsg{taskID: taskID, err: client.Delete(taskID)}
	}
}

func (m model) createPR(taskID, token, title, body string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		pr, err := client.CreatePR(taskID, token, title, body)
		return prResultMsg{taskID: taskID, pr: pr, err: err}
	}
}

func (m model) sendFeedback(taskID, feedback string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.SendFeedback(taskID, feedback)
		return feedbackResultMsg{taskID: taskID, feedback: feedback, resp: resp, err: err}
	}
}

func (m model) copyToClipboard(text string, view viewKind) tea.Cmd {
	cb := m.clipboard
	return func() tea.Msg {
		return clipboardResultMsg{err: cb.WriteText(text), view: view}
	}
}
