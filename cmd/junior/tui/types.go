package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/vinayakankugoyal/junior/internal/api"
)

type viewKind int

const (
	viewList viewKind = iota
	viewDetail
	viewSubmit
	viewConfirmDelete
	viewPR
	viewFeedback
	viewHelp
)

// helpItem is a single help-bar entry with a key label and description.
type helpItem struct {
	key  string
	desc string
}

type tickMsg time.Time

// detailTickMsg drives the faster poll of the task open in the detail
// view. seq pins the message to the tick chain that scheduled it;
// closing or reopening the panel bumps the model's counter and orphans
// older chains.
type detailTickMsg struct {
	seq int
}

type tasksMsg struct {
	tasks []api.Task
	seq   int // fetch sequence number; stale responses (seq < model.fetchSeq) are discarded
}

type tasksErrMsg struct {
	err error
	seq int // fetch sequence number for staleness check
}

// taskMsg delivers a single task snapshot. silent marks background
// detail polls, whose errors are swallowed and whose unchanged
// snapshots are dropped.
type taskMsg struct {
	task   *api.Task
	taskID string
	silent bool
	err    error
}

type contentMsg struct {
	taskID  string
	content *api.TaskContent
	err     error
}

// sessionMsg signals that the GitHub session finished loading.
type sessionMsg struct {
	err error
}

type submitResultMsg struct {
	taskID string
	err    error
}

type deleteResultMsg struct {
	taskID string
	err    error
}

type prResultMsg struct {
	taskID string
	pr     *api.PullRequest
	err    error
}

type feedbackResultMsg struct {
	taskID   string
	feedback string
	resp     *api.FeedbackResponse
	err      error
}

type clipboardResultMsg struct {
	err  error
	view viewKind // The view where copy was triggered (for flash attribution)
}

// ClipboardWriter is an interface for clipboard operations (allows mocking in tests)
type ClipboardWriter interface {
	WriteText(text string) error
}

// realClipboard implements ClipboardWriter using the system clipboard
type realClipboard struct{}

func (r *realClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
